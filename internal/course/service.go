// AngelaMos | 2026
// service.go

package course

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/renankelm10/cursera/internal/core"
	"github.com/renankelm10/cursera/internal/entitlement"
)

// LessonProvider supplies the full, ungated lesson list for a course. The
// course service applies the entitlement gate before anything leaves the
// server; providers never make access decisions.
type LessonProvider interface {
	ListForCourse(ctx context.Context, courseID string) ([]LessonItem, error)
}

type Service struct {
	repo    Repository
	lessons LessonProvider
}

func NewService(repo Repository, lessons LessonProvider) *Service {
	return &Service{repo: repo, lessons: lessons}
}

func (s *Service) ListCourses(
	ctx context.Context,
	params ListCoursesParams,
) ([]Course, int, error) {
	return s.repo.List(ctx, params)
}

// GetDetail evaluates entitlement for the caller and returns the course
// with its lessons gated accordingly. A restricted course still returns
// 200 with metadata and the purchase link, so responses never reveal more
// about existence than the public catalog already does.
func (s *Service) GetDetail(
	ctx context.Context,
	courseID string,
	id entitlement.Identity,
) (*CourseDetailResponse, error) {
	course, err := s.repo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	access := entitlement.Evaluate(id, course)

	lessons, err := s.lessons.ListForCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}

	return &CourseDetailResponse{
		CourseResponse: ToCourseResponse(course),
		Access:         access.String(),
		Lessons:        GateLessons(access, lessons),
	}, nil
}

// GateLessons strips video URLs from lessons the access level does not
// cover. Free-flagged lessons stay watchable; they are the course's own
// preview material.
func GateLessons(
	access entitlement.Access,
	lessons []LessonItem,
) []LessonItem {
	if access == entitlement.AccessFull {
		return lessons
	}

	gated := make([]LessonItem, len(lessons))
	for i, l := range lessons {
		if !l.IsFree {
			l.VideoURL = nil
		}
		gated[i] = l
	}
	return gated
}

func (s *Service) CreateCourse(
	ctx context.Context,
	req CreateCourseRequest,
) (*Course, error) {
	course := &Course{
		ID:            uuid.New().String(),
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Level:         req.Level,
		DurationHours: req.DurationHours,
		Instructor:    req.Instructor,
		ThumbnailURL:  req.ThumbnailURL,
		PurchaseURL:   req.PurchaseURL,
		Rating:        req.Rating,
		IsPreview:     req.IsPreview,
	}

	if err := s.repo.Create(ctx, course); err != nil {
		return nil, err
	}

	return course, nil
}

func (s *Service) UpdateCourse(
	ctx context.Context,
	id string,
	req UpdateCourseRequest,
) (*Course, error) {
	course, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Category != nil {
		course.Category = *req.Category
	}
	if req.Level != nil {
		course.Level = *req.Level
	}
	if req.DurationHours != nil {
		course.DurationHours = *req.DurationHours
	}
	if req.Instructor != nil {
		course.Instructor = *req.Instructor
	}
	if req.ThumbnailURL != nil {
		course.ThumbnailURL = *req.ThumbnailURL
	}
	if req.PurchaseURL != nil {
		course.PurchaseURL = *req.PurchaseURL
	}
	if req.Rating != nil {
		course.Rating = *req.Rating
	}
	if req.IsPreview != nil {
		course.IsPreview = *req.IsPreview
	}

	if err := s.repo.Update(ctx, course); err != nil {
		return nil, err
	}

	return course, nil
}

func (s *Service) DeleteCourse(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetCourse(ctx context.Context, id string) (*Course, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Enroll(
	ctx context.Context,
	userID, courseID string,
) (*Enrollment, error) {
	if userID == "" {
		return nil, fmt.Errorf("enroll: %w", core.ErrUnauthorized)
	}

	if _, err := s.repo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	enrollment := &Enrollment{
		ID:       uuid.New().String(),
		UserID:   userID,
		CourseID: courseID,
	}

	if err := s.repo.Enroll(ctx, enrollment); err != nil {
		return nil, err
	}

	return enrollment, nil
}

func (s *Service) CountCourses(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *Service) CountEnrollments(ctx context.Context) (int, error) {
	return s.repo.CountEnrollments(ctx)
}
