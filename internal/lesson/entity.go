// AngelaMos | 2026
// entity.go

package lesson

import (
	"time"
)

// Lesson belongs to exactly one course. order_index drives playback order;
// is_free marks the course's own preview material, open regardless of the
// caller's entitlement.
type Lesson struct {
	ID              string    `db:"id"`
	CourseID        string    `db:"course_id"`
	Title           string    `db:"title"`
	Description     string    `db:"description"`
	VideoURL        string    `db:"video_url"`
	DurationMinutes int       `db:"duration_minutes"`
	OrderIndex      int       `db:"order_index"`
	IsFree          bool      `db:"is_free"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// Progress records a completed lesson for a user. One row per
// (user, lesson) pair; completing again is a no-op.
type Progress struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	LessonID    string    `db:"lesson_id"`
	CourseID    string    `db:"course_id"`
	CompletedAt time.Time `db:"completed_at"`
}
