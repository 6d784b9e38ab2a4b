// AngelaMos | 2026
// service_test.go

package course

import (
	"context"
	"errors"
	"testing"

	"github.com/renankelm10/cursera/internal/core"
	"github.com/renankelm10/cursera/internal/entitlement"
)

type fakeRepo struct {
	courses     map[string]*Course
	enrollments map[string]bool
	incremented []string
}

func newFakeRepo(courses ...*Course) *fakeRepo {
	r := &fakeRepo{
		courses:     make(map[string]*Course),
		enrollments: make(map[string]bool),
	}
	for _, c := range courses {
		r.courses[c.ID] = c
	}
	return r
}

func (r *fakeRepo) Create(_ context.Context, c *Course) error {
	r.courses[c.ID] = c
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Course, error) {
	c, ok := r.courses[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return c, nil
}

func (r *fakeRepo) Update(_ context.Context, c *Course) error {
	if _, ok := r.courses[c.ID]; !ok {
		return core.ErrNotFound
	}
	r.courses[c.ID] = c
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.courses[id]; !ok {
		return core.ErrNotFound
	}
	delete(r.courses, id)
	return nil
}

func (r *fakeRepo) List(_ context.Context, _ ListCoursesParams) ([]Course, int, error) {
	out := make([]Course, 0, len(r.courses))
	for _, c := range r.courses {
		out = append(out, *c)
	}
	return out, len(out), nil
}

func (r *fakeRepo) Count(_ context.Context) (int, error) {
	return len(r.courses), nil
}

func (r *fakeRepo) Enroll(_ context.Context, e *Enrollment) error {
	key := e.UserID + "/" + e.CourseID
	if r.enrollments[key] {
		return core.ErrDuplicateKey
	}
	r.enrollments[key] = true
	r.incremented = append(r.incremented, e.CourseID)
	return nil
}

func (r *fakeRepo) CountEnrollments(_ context.Context) (int, error) {
	return len(r.enrollments), nil
}

type fakeLessons struct {
	items []LessonItem
	err   error
}

func (f *fakeLessons) ListForCourse(_ context.Context, _ string) ([]LessonItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]LessonItem, len(f.items))
	copy(out, f.items)
	return out, nil
}

func strptr(s string) *string { return &s }

func paidCourseWithLessons() (*Course, *fakeLessons) {
	course := &Course{ID: "c1", Title: "Go Deep Dive", IsPreview: false}
	lessons := &fakeLessons{items: []LessonItem{
		{ID: "l1", Title: "Intro", OrderIndex: 0, IsFree: true, VideoURL: strptr("https://cdn/v1")},
		{ID: "l2", Title: "Paid part", OrderIndex: 1, IsFree: false, VideoURL: strptr("https://cdn/v2")},
	}}
	return course, lessons
}

func TestGetDetailAnonymousGetsPreviewOnly(t *testing.T) {
	course, lessons := paidCourseWithLessons()
	svc := NewService(newFakeRepo(course), lessons)

	detail, err := svc.GetDetail(context.Background(), "c1", entitlement.Anonymous())
	if err != nil {
		t.Fatalf("GetDetail: %v", err)
	}

	if detail.Access != "preview_only" {
		t.Fatalf("access = %q, want preview_only", detail.Access)
	}
	if detail.Lessons[0].VideoURL == nil {
		t.Error("free lesson should keep its video url")
	}
	if detail.Lessons[1].VideoURL != nil {
		t.Error("paid lesson video url must be withheld for anonymous")
	}
}

func TestGetDetailPaidUserGetsEverything(t *testing.T) {
	course, lessons := paidCourseWithLessons()
	svc := NewService(newFakeRepo(course), lessons)

	ident := entitlement.Authenticated("u1", entitlement.CapPaidContent)
	detail, err := svc.GetDetail(context.Background(), "c1", ident)
	if err != nil {
		t.Fatalf("GetDetail: %v", err)
	}

	if detail.Access != "full" {
		t.Fatalf("access = %q, want full", detail.Access)
	}
	for _, l := range detail.Lessons {
		if l.VideoURL == nil {
			t.Errorf("lesson %s: video url missing for paid user", l.ID)
		}
	}
}

func TestGetDetailAdminGetsEverything(t *testing.T) {
	course, lessons := paidCourseWithLessons()
	svc := NewService(newFakeRepo(course), lessons)

	ident := entitlement.Authenticated("a1", entitlement.CapAdmin)
	detail, err := svc.GetDetail(context.Background(), "c1", ident)
	if err != nil {
		t.Fatalf("GetDetail: %v", err)
	}

	if detail.Access != "full" {
		t.Fatalf("access = %q, want full", detail.Access)
	}
	if detail.Lessons[1].VideoURL == nil {
		t.Error("paid lesson video url missing for admin")
	}
}

func TestGetDetailPreviewCourseOpenToAll(t *testing.T) {
	course := &Course{ID: "c2", Title: "Free Taster", IsPreview: true}
	lessons := &fakeLessons{items: []LessonItem{
		{ID: "l1", IsFree: false, VideoURL: strptr("https://cdn/v1")},
	}}
	svc := NewService(newFakeRepo(course), lessons)

	detail, err := svc.GetDetail(context.Background(), "c2", entitlement.Anonymous())
	if err != nil {
		t.Fatalf("GetDetail: %v", err)
	}

	if detail.Access != "full" {
		t.Fatalf("access = %q, want full for preview course", detail.Access)
	}
	if detail.Lessons[0].VideoURL == nil {
		t.Error("preview course lessons should be fully visible")
	}
}

func TestGetDetailRestrictedCourseStillReturnsMetadata(t *testing.T) {
	course, lessons := paidCourseWithLessons()
	course.PurchaseURL = "https://pay.example/c1"
	svc := NewService(newFakeRepo(course), lessons)

	ident := entitlement.Authenticated("u1")
	detail, err := svc.GetDetail(context.Background(), "c1", ident)
	if err != nil {
		t.Fatalf("GetDetail: %v", err)
	}

	if detail.Title != "Go Deep Dive" {
		t.Errorf("title = %q", detail.Title)
	}
	if detail.PurchaseURL != "https://pay.example/c1" {
		t.Error("purchase url should always be present in the gated payload")
	}
}

func TestGetDetailMissingCourse(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeLessons{})

	_, err := svc.GetDetail(context.Background(), "nope", entitlement.Anonymous())
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestGateLessonsDoesNotMutateInput(t *testing.T) {
	lessons := []LessonItem{
		{ID: "l1", IsFree: false, VideoURL: strptr("https://cdn/v1")},
	}

	gated := GateLessons(entitlement.AccessPreviewOnly, lessons)

	if gated[0].VideoURL != nil {
		t.Error("gated copy should have url withheld")
	}
	if lessons[0].VideoURL == nil {
		t.Error("input slice must not be mutated")
	}
}

func TestEnroll(t *testing.T) {
	course, lessons := paidCourseWithLessons()
	repo := newFakeRepo(course)
	svc := NewService(repo, lessons)

	enrollment, err := svc.Enroll(context.Background(), "u1", "c1")
	if err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if enrollment.UserID != "u1" || enrollment.CourseID != "c1" {
		t.Errorf("enrollment = %+v", enrollment)
	}
	if len(repo.incremented) != 1 || repo.incremented[0] != "c1" {
		t.Errorf("students_count increments = %v", repo.incremented)
	}

	if _, err := svc.Enroll(context.Background(), "u1", "c1"); !errors.Is(err, core.ErrDuplicateKey) {
		t.Fatalf("second enroll err = %v, want ErrDuplicateKey", err)
	}
	if len(repo.incremented) != 1 {
		t.Errorf("duplicate enroll must not bump students_count, increments = %v", repo.incremented)
	}

	if _, err := svc.Enroll(context.Background(), "u1", "missing"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("enroll missing course err = %v, want ErrNotFound", err)
	}
}

func TestUpdateCoursePartial(t *testing.T) {
	course, lessons := paidCourseWithLessons()
	svc := NewService(newFakeRepo(course), lessons)

	title := "Renamed"
	preview := true
	updated, err := svc.UpdateCourse(context.Background(), "c1", UpdateCourseRequest{
		Title:     &title,
		IsPreview: &preview,
	})
	if err != nil {
		t.Fatalf("UpdateCourse: %v", err)
	}

	if updated.Title != "Renamed" {
		t.Errorf("title = %q", updated.Title)
	}
	if !updated.IsPreview {
		t.Error("is_preview should be updated")
	}
}
