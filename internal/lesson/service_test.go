// AngelaMos | 2026
// service_test.go

package lesson

import (
	"context"
	"errors"
	"testing"

	"github.com/renankelm10/cursera/internal/core"
	"github.com/renankelm10/cursera/internal/course"
	"github.com/renankelm10/cursera/internal/entitlement"
)

type fakeRepo struct {
	lessons  map[string]*Lesson
	progress map[string]bool
}

func newFakeRepo(lessons ...*Lesson) *fakeRepo {
	r := &fakeRepo{
		lessons:  make(map[string]*Lesson),
		progress: make(map[string]bool),
	}
	for _, l := range lessons {
		r.lessons[l.ID] = l
	}
	return r
}

func (r *fakeRepo) Create(_ context.Context, l *Lesson) error {
	r.lessons[l.ID] = l
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Lesson, error) {
	l, ok := r.lessons[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return l, nil
}

func (r *fakeRepo) Update(_ context.Context, l *Lesson) error {
	if _, ok := r.lessons[l.ID]; !ok {
		return core.ErrNotFound
	}
	r.lessons[l.ID] = l
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.lessons[id]; !ok {
		return core.ErrNotFound
	}
	delete(r.lessons, id)
	return nil
}

func (r *fakeRepo) ListByCourse(_ context.Context, courseID string) ([]Lesson, error) {
	var out []Lesson
	for _, l := range r.lessons {
		if l.CourseID == courseID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *fakeRepo) Count(_ context.Context) (int, error) {
	return len(r.lessons), nil
}

func (r *fakeRepo) UpsertProgress(_ context.Context, p *Progress) error {
	r.progress[p.UserID+"/"+p.LessonID] = true
	return nil
}

func (r *fakeRepo) ListCompletedLessonIDs(_ context.Context, userID, courseID string) ([]string, error) {
	var ids []string
	for _, l := range r.lessons {
		if l.CourseID == courseID && r.progress[userID+"/"+l.ID] {
			ids = append(ids, l.ID)
		}
	}
	return ids, nil
}

type fakeCourses struct {
	courses map[string]*course.Course
}

func (f *fakeCourses) GetByID(_ context.Context, id string) (*course.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return c, nil
}

func fixture() (*Service, *fakeRepo) {
	repo := newFakeRepo(
		&Lesson{ID: "l1", CourseID: "c1", Title: "Intro", IsFree: true, VideoURL: "https://cdn/v1", OrderIndex: 0},
		&Lesson{ID: "l2", CourseID: "c1", Title: "Paid", IsFree: false, VideoURL: "https://cdn/v2", OrderIndex: 1},
	)
	courses := &fakeCourses{courses: map[string]*course.Course{
		"c1": {ID: "c1", Title: "Go Deep Dive", IsPreview: false},
	}}
	return NewService(repo, courses), repo
}

func TestGetLessonAnonymousFreeLesson(t *testing.T) {
	svc, _ := fixture()

	resp, err := svc.GetLesson(context.Background(), "l1", entitlement.Anonymous())
	if err != nil {
		t.Fatalf("GetLesson: %v", err)
	}

	if resp.VideoURL == nil || *resp.VideoURL != "https://cdn/v1" {
		t.Error("free lesson should include its video url for anonymous")
	}
}

func TestGetLessonAnonymousPaidLessonWithheld(t *testing.T) {
	svc, _ := fixture()

	resp, err := svc.GetLesson(context.Background(), "l2", entitlement.Anonymous())
	if err != nil {
		t.Fatalf("GetLesson: %v", err)
	}

	if resp.VideoURL != nil {
		t.Error("paid lesson video url must be withheld for anonymous")
	}
	if resp.Title != "Paid" {
		t.Errorf("metadata should still be present, title = %q", resp.Title)
	}
}

func TestGetLessonPaidUser(t *testing.T) {
	svc, _ := fixture()

	ident := entitlement.Authenticated("u1", entitlement.CapPaidContent)
	resp, err := svc.GetLesson(context.Background(), "l2", ident)
	if err != nil {
		t.Fatalf("GetLesson: %v", err)
	}

	if resp.VideoURL == nil {
		t.Error("paid user should get the video url")
	}
}

func TestGetLessonPreviewCourse(t *testing.T) {
	repo := newFakeRepo(
		&Lesson{ID: "l1", CourseID: "c2", IsFree: false, VideoURL: "https://cdn/v1"},
	)
	courses := &fakeCourses{courses: map[string]*course.Course{
		"c2": {ID: "c2", IsPreview: true},
	}}
	svc := NewService(repo, courses)

	resp, err := svc.GetLesson(context.Background(), "l1", entitlement.Anonymous())
	if err != nil {
		t.Fatalf("GetLesson: %v", err)
	}

	if resp.VideoURL == nil {
		t.Error("lesson in a preview course should be open to anonymous")
	}
}

func TestGetLessonMissing(t *testing.T) {
	svc, _ := fixture()

	_, err := svc.GetLesson(context.Background(), "nope", entitlement.Anonymous())
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListForCourseReturnsUngatedItems(t *testing.T) {
	svc, _ := fixture()

	items, err := svc.ListForCourse(context.Background(), "c1")
	if err != nil {
		t.Fatalf("ListForCourse: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	for _, item := range items {
		if item.VideoURL == nil {
			t.Errorf("lesson %s: provider must return the url, gating happens downstream", item.ID)
		}
	}
}

func TestListForCourseGated(t *testing.T) {
	svc, _ := fixture()

	t.Run("anonymous", func(t *testing.T) {
		lessons, err := svc.ListForCourseGated(
			context.Background(), "c1", entitlement.Anonymous())
		if err != nil {
			t.Fatalf("ListForCourseGated: %v", err)
		}

		for _, l := range lessons {
			if l.IsFree && l.VideoURL == nil {
				t.Errorf("lesson %s: free lesson url withheld", l.ID)
			}
			if !l.IsFree && l.VideoURL != nil {
				t.Errorf("lesson %s: paid lesson url leaked", l.ID)
			}
		}
	})

	t.Run("paid user", func(t *testing.T) {
		ident := entitlement.Authenticated("u1", entitlement.CapPaidContent)
		lessons, err := svc.ListForCourseGated(context.Background(), "c1", ident)
		if err != nil {
			t.Fatalf("ListForCourseGated: %v", err)
		}

		for _, l := range lessons {
			if l.VideoURL == nil {
				t.Errorf("lesson %s: url missing for paid user", l.ID)
			}
		}
	})

	t.Run("missing course", func(t *testing.T) {
		_, err := svc.ListForCourseGated(
			context.Background(), "nope", entitlement.Anonymous())
		if !errors.Is(err, core.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestMarkCompleteAndProgress(t *testing.T) {
	svc, _ := fixture()

	progress, err := svc.MarkComplete(context.Background(), "u1", "l1")
	if err != nil {
		t.Fatalf("MarkComplete: %v", err)
	}
	if progress.CourseID != "c1" {
		t.Errorf("course_id = %q", progress.CourseID)
	}

	// repeating is a no-op
	if _, err := svc.MarkComplete(context.Background(), "u1", "l1"); err != nil {
		t.Fatalf("second MarkComplete: %v", err)
	}

	summary, err := svc.GetCourseProgress(context.Background(), "u1", "c1")
	if err != nil {
		t.Fatalf("GetCourseProgress: %v", err)
	}
	if len(summary.CompletedLessons) != 1 {
		t.Errorf("completed = %v, want one entry", summary.CompletedLessons)
	}
	if summary.TotalLessons != 2 {
		t.Errorf("total = %d, want 2", summary.TotalLessons)
	}
}

func TestMarkCompleteMissingLesson(t *testing.T) {
	svc, _ := fixture()

	_, err := svc.MarkComplete(context.Background(), "u1", "nope")
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCreateLessonRequiresCourse(t *testing.T) {
	svc, _ := fixture()

	_, err := svc.CreateLesson(context.Background(), "missing", CreateLessonRequest{Title: "x"})
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	lesson, err := svc.CreateLesson(context.Background(), "c1", CreateLessonRequest{
		Title:      "New",
		VideoURL:   "https://cdn/v3",
		OrderIndex: 2,
	})
	if err != nil {
		t.Fatalf("CreateLesson: %v", err)
	}
	if lesson.CourseID != "c1" || lesson.ID == "" {
		t.Errorf("lesson = %+v", lesson)
	}
}
