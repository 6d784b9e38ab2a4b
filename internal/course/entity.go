// AngelaMos | 2026
// entity.go

package course

import (
	"time"
)

// Course is a catalog entry. is_preview is the only entitlement-relevant
// field: preview courses are open to every identity regardless of payment
// state.
type Course struct {
	ID            string    `db:"id"`
	Title         string    `db:"title"`
	Description   string    `db:"description"`
	Category      string    `db:"category"`
	Level         string    `db:"level"`
	DurationHours float64   `db:"duration_hours"`
	Instructor    string    `db:"instructor"`
	ThumbnailURL  string    `db:"thumbnail_url"`
	PurchaseURL   string    `db:"purchase_url"`
	Rating        float64   `db:"rating"`
	StudentsCount int       `db:"students_count"`
	IsPreview     bool      `db:"is_preview"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// PreviewOpen satisfies the entitlement evaluator's course contract.
func (c *Course) PreviewOpen() bool {
	return c.IsPreview
}

const (
	CategoryProgramming = "programming"
	CategoryDesign      = "design"
	CategoryMarketing   = "marketing"
	CategoryBusiness    = "business"
	CategoryData        = "data"
	CategoryLanguages   = "languages"
)

const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// Enrollment links a user to a course they joined. The pair is unique;
// enrolling twice is rejected.
type Enrollment struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	CourseID  string    `db:"course_id"`
	CreatedAt time.Time `db:"created_at"`
}
