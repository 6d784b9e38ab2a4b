// AngelaMos | 2026
// dto.go

package course

import (
	"time"
)

type CreateCourseRequest struct {
	Title         string  `json:"title"          validate:"required,min=1,max=200"`
	Description   string  `json:"description"    validate:"required,min=1,max=5000"`
	Category      string  `json:"category"       validate:"required,oneof=programming design marketing business data languages"`
	Level         string  `json:"level"          validate:"required,oneof=beginner intermediate advanced"`
	DurationHours float64 `json:"duration_hours" validate:"omitempty,gte=0"`
	Instructor    string  `json:"instructor"     validate:"omitempty,max=100"`
	ThumbnailURL  string  `json:"thumbnail_url"  validate:"omitempty,url,max=500"`
	PurchaseURL   string  `json:"purchase_url"   validate:"omitempty,url,max=500"`
	Rating        float64 `json:"rating"         validate:"omitempty,gte=0,lte=5"`
	IsPreview     bool    `json:"is_preview"`
}

type UpdateCourseRequest struct {
	Title         *string  `json:"title,omitempty"          validate:"omitempty,min=1,max=200"`
	Description   *string  `json:"description,omitempty"    validate:"omitempty,min=1,max=5000"`
	Category      *string  `json:"category,omitempty"       validate:"omitempty,oneof=programming design marketing business data languages"`
	Level         *string  `json:"level,omitempty"          validate:"omitempty,oneof=beginner intermediate advanced"`
	DurationHours *float64 `json:"duration_hours,omitempty" validate:"omitempty,gte=0"`
	Instructor    *string  `json:"instructor,omitempty"     validate:"omitempty,max=100"`
	ThumbnailURL  *string  `json:"thumbnail_url,omitempty"  validate:"omitempty,url,max=500"`
	PurchaseURL   *string  `json:"purchase_url,omitempty"   validate:"omitempty,url,max=500"`
	Rating        *float64 `json:"rating,omitempty"         validate:"omitempty,gte=0,lte=5"`
	IsPreview     *bool    `json:"is_preview,omitempty"`
}

type CourseResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Level         string    `json:"level"`
	DurationHours float64   `json:"duration_hours"`
	Instructor    string    `json:"instructor"`
	ThumbnailURL  string    `json:"thumbnail_url"`
	PurchaseURL   string    `json:"purchase_url"`
	Rating        float64   `json:"rating"`
	StudentsCount int       `json:"students_count"`
	IsPreview     bool      `json:"is_preview"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// LessonItem is a lesson as embedded in a course detail payload. VideoURL
// is nil unless the evaluated access level permits it; the field is
// stripped server-side, the client never sees it.
type LessonItem struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	DurationMinutes int     `json:"duration_minutes"`
	OrderIndex      int     `json:"order_index"`
	IsFree          bool    `json:"is_free"`
	VideoURL        *string `json:"video_url,omitempty"`
}

// CourseDetailResponse carries the computed access level so the UI can
// render the paywall affordance without re-deriving the rule. The access
// field is a display hint; enforcement already happened server-side.
type CourseDetailResponse struct {
	CourseResponse
	Access  string       `json:"access"`
	Lessons []LessonItem `json:"lessons"`
}

type ListCoursesParams struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Category string `json:"category"`
	Level    string `json:"level"`
	Search   string `json:"search"`
}

func (p *ListCoursesParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListCoursesParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type EnrollmentResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CourseID  string    `json:"course_id"`
	CreatedAt time.Time `json:"created_at"`
}

func ToCourseResponse(c *Course) CourseResponse {
	return CourseResponse{
		ID:            c.ID,
		Title:         c.Title,
		Description:   c.Description,
		Category:      c.Category,
		Level:         c.Level,
		DurationHours: c.DurationHours,
		Instructor:    c.Instructor,
		ThumbnailURL:  c.ThumbnailURL,
		PurchaseURL:   c.PurchaseURL,
		Rating:        c.Rating,
		StudentsCount: c.StudentsCount,
		IsPreview:     c.IsPreview,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func ToCourseResponseList(courses []Course) []CourseResponse {
	responses := make([]CourseResponse, 0, len(courses))
	for _, c := range courses {
		responses = append(responses, ToCourseResponse(&c))
	}
	return responses
}
