// AngelaMos | 2026
// dto.go

package lesson

import (
	"time"
)

type CreateLessonRequest struct {
	Title           string `json:"title"            validate:"required,min=1,max=200"`
	Description     string `json:"description"      validate:"omitempty,max=5000"`
	VideoURL        string `json:"video_url"        validate:"omitempty,url,max=500"`
	DurationMinutes int    `json:"duration_minutes" validate:"omitempty,gte=0"`
	OrderIndex      int    `json:"order_index"      validate:"gte=0"`
	IsFree          bool   `json:"is_free"`
}

type UpdateLessonRequest struct {
	Title           *string `json:"title,omitempty"            validate:"omitempty,min=1,max=200"`
	Description     *string `json:"description,omitempty"      validate:"omitempty,max=5000"`
	VideoURL        *string `json:"video_url,omitempty"        validate:"omitempty,url,max=500"`
	DurationMinutes *int    `json:"duration_minutes,omitempty" validate:"omitempty,gte=0"`
	OrderIndex      *int    `json:"order_index,omitempty"      validate:"omitempty,gte=0"`
	IsFree          *bool   `json:"is_free,omitempty"`
}

// LessonResponse is the gated single-lesson payload. VideoURL is nil when
// the caller's access level does not cover this lesson.
type LessonResponse struct {
	ID              string    `json:"id"`
	CourseID        string    `json:"course_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"duration_minutes"`
	OrderIndex      int       `json:"order_index"`
	IsFree          bool      `json:"is_free"`
	VideoURL        *string   `json:"video_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// AdminLessonResponse always carries the video URL. Only reachable behind
// the admin gate.
type AdminLessonResponse struct {
	ID              string    `json:"id"`
	CourseID        string    `json:"course_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	VideoURL        string    `json:"video_url"`
	DurationMinutes int       `json:"duration_minutes"`
	OrderIndex      int       `json:"order_index"`
	IsFree          bool      `json:"is_free"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type ProgressResponse struct {
	CourseID         string   `json:"course_id"`
	CompletedLessons []string `json:"completed_lessons"`
	TotalLessons     int      `json:"total_lessons"`
}

func toAdminResponse(l *Lesson) AdminLessonResponse {
	return AdminLessonResponse{
		ID:              l.ID,
		CourseID:        l.CourseID,
		Title:           l.Title,
		Description:     l.Description,
		VideoURL:        l.VideoURL,
		DurationMinutes: l.DurationMinutes,
		OrderIndex:      l.OrderIndex,
		IsFree:          l.IsFree,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}
