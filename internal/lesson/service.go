// AngelaMos | 2026
// service.go

package lesson

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/renankelm10/cursera/internal/course"
	"github.com/renankelm10/cursera/internal/entitlement"
)

// CourseSource resolves the owning course so the single-lesson endpoint
// can run the same entitlement evaluation the course detail does. Matched
// by the course repository.
type CourseSource interface {
	GetByID(ctx context.Context, id string) (*course.Course, error)
}

type Service struct {
	repo    Repository
	courses CourseSource
}

func NewService(repo Repository, courses CourseSource) *Service {
	return &Service{repo: repo, courses: courses}
}

// ListForCourse satisfies course.LessonProvider. Items come back ungated;
// the course service applies the access decision.
func (s *Service) ListForCourse(
	ctx context.Context,
	courseID string,
) ([]course.LessonItem, error) {
	lessons, err := s.repo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	items := make([]course.LessonItem, 0, len(lessons))
	for _, l := range lessons {
		url := l.VideoURL
		items = append(items, course.LessonItem{
			ID:              l.ID,
			Title:           l.Title,
			Description:     l.Description,
			DurationMinutes: l.DurationMinutes,
			OrderIndex:      l.OrderIndex,
			IsFree:          l.IsFree,
			VideoURL:        &url,
		})
	}

	return items, nil
}

// ListForCourseGated is the standalone lesson-list endpoint's view: same
// payload the course detail embeds, gated against the owning course.
func (s *Service) ListForCourseGated(
	ctx context.Context,
	courseID string,
	id entitlement.Identity,
) ([]LessonResponse, error) {
	owner, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	access := entitlement.Evaluate(id, owner)

	lessons, err := s.repo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	responses := make([]LessonResponse, 0, len(lessons))
	for i := range lessons {
		l := &lessons[i]
		resp := LessonResponse{
			ID:              l.ID,
			CourseID:        l.CourseID,
			Title:           l.Title,
			Description:     l.Description,
			DurationMinutes: l.DurationMinutes,
			OrderIndex:      l.OrderIndex,
			IsFree:          l.IsFree,
			CreatedAt:       l.CreatedAt,
			UpdatedAt:       l.UpdatedAt,
		}
		if access == entitlement.AccessFull || l.IsFree {
			resp.VideoURL = &l.VideoURL
		}
		responses = append(responses, resp)
	}

	return responses, nil
}

// GetLesson re-evaluates entitlement against the owning course rather than
// trusting whatever the caller saw on the course page. The two entry points
// must never disagree about what a caller can watch.
func (s *Service) GetLesson(
	ctx context.Context,
	lessonID string,
	id entitlement.Identity,
) (*LessonResponse, error) {
	lesson, err := s.repo.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	owner, err := s.courses.GetByID(ctx, lesson.CourseID)
	if err != nil {
		return nil, fmt.Errorf("resolve owning course: %w", err)
	}

	access := entitlement.Evaluate(id, owner)

	resp := &LessonResponse{
		ID:              lesson.ID,
		CourseID:        lesson.CourseID,
		Title:           lesson.Title,
		Description:     lesson.Description,
		DurationMinutes: lesson.DurationMinutes,
		OrderIndex:      lesson.OrderIndex,
		IsFree:          lesson.IsFree,
		CreatedAt:       lesson.CreatedAt,
		UpdatedAt:       lesson.UpdatedAt,
	}

	if access == entitlement.AccessFull || lesson.IsFree {
		resp.VideoURL = &lesson.VideoURL
	}

	return resp, nil
}

func (s *Service) CreateLesson(
	ctx context.Context,
	courseID string,
	req CreateLessonRequest,
) (*Lesson, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	lesson := &Lesson{
		ID:              uuid.New().String(),
		CourseID:        courseID,
		Title:           req.Title,
		Description:     req.Description,
		VideoURL:        req.VideoURL,
		DurationMinutes: req.DurationMinutes,
		OrderIndex:      req.OrderIndex,
		IsFree:          req.IsFree,
	}

	if err := s.repo.Create(ctx, lesson); err != nil {
		return nil, err
	}

	return lesson, nil
}

func (s *Service) UpdateLesson(
	ctx context.Context,
	id string,
	req UpdateLessonRequest,
) (*Lesson, error) {
	lesson, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		lesson.Title = *req.Title
	}
	if req.Description != nil {
		lesson.Description = *req.Description
	}
	if req.VideoURL != nil {
		lesson.VideoURL = *req.VideoURL
	}
	if req.DurationMinutes != nil {
		lesson.DurationMinutes = *req.DurationMinutes
	}
	if req.OrderIndex != nil {
		lesson.OrderIndex = *req.OrderIndex
	}
	if req.IsFree != nil {
		lesson.IsFree = *req.IsFree
	}

	if err := s.repo.Update(ctx, lesson); err != nil {
		return nil, err
	}

	return lesson, nil
}

func (s *Service) DeleteLesson(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListByCourse(
	ctx context.Context,
	courseID string,
) ([]Lesson, error) {
	return s.repo.ListByCourse(ctx, courseID)
}

// MarkComplete records lesson completion for a user. Idempotent: repeating
// it keeps the original completion timestamp.
func (s *Service) MarkComplete(
	ctx context.Context,
	userID, lessonID string,
) (*Progress, error) {
	lesson, err := s.repo.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	progress := &Progress{
		ID:       uuid.New().String(),
		UserID:   userID,
		LessonID: lesson.ID,
		CourseID: lesson.CourseID,
	}

	if err := s.repo.UpsertProgress(ctx, progress); err != nil {
		return nil, err
	}

	return progress, nil
}

func (s *Service) GetCourseProgress(
	ctx context.Context,
	userID, courseID string,
) (*ProgressResponse, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	lessons, err := s.repo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	completed, err := s.repo.ListCompletedLessonIDs(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	if completed == nil {
		completed = []string{}
	}

	return &ProgressResponse{
		CourseID:         courseID,
		CompletedLessons: completed,
		TotalLessons:     len(lessons),
	}, nil
}

func (s *Service) CountLessons(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

var _ course.LessonProvider = (*Service)(nil)
