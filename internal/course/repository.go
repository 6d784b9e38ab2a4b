// AngelaMos | 2026
// repository.go

package course

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/renankelm10/cursera/internal/core"
)

type Repository interface {
	Create(ctx context.Context, course *Course) error
	GetByID(ctx context.Context, id string) (*Course, error)
	Update(ctx context.Context, course *Course) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params ListCoursesParams) ([]Course, int, error)
	Count(ctx context.Context) (int, error)

	Enroll(ctx context.Context, enrollment *Enrollment) error
	CountEnrollments(ctx context.Context) (int, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const courseColumns = `id, title, description, category, level, duration_hours,
	       instructor, thumbnail_url, purchase_url, rating, students_count,
	       is_preview, created_at, updated_at`

func (r *repository) Create(ctx context.Context, course *Course) error {
	query := `
		INSERT INTO courses (id, title, description, category, level,
		                     duration_hours, instructor, thumbnail_url,
		                     purchase_url, rating, is_preview)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING students_count, created_at, updated_at`

	err := r.db.GetContext(ctx, course, query,
		course.ID,
		course.Title,
		course.Description,
		course.Category,
		course.Level,
		course.DurationHours,
		course.Instructor,
		course.ThumbnailURL,
		course.PurchaseURL,
		course.Rating,
		course.IsPreview,
	)
	if err != nil {
		return fmt.Errorf("create course: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Course, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM courses
		WHERE id = $1`, courseColumns)

	var course Course
	err := r.db.GetContext(ctx, &course, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get course: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}

	return &course, nil
}

func (r *repository) Update(ctx context.Context, course *Course) error {
	query := `
		UPDATE courses
		SET title = $2, description = $3, category = $4, level = $5,
		    duration_hours = $6, instructor = $7, thumbnail_url = $8,
		    purchase_url = $9, rating = $10, is_preview = $11,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &course.UpdatedAt, query,
		course.ID,
		course.Title,
		course.Description,
		course.Category,
		course.Level,
		course.DurationHours,
		course.Instructor,
		course.ThumbnailURL,
		course.PurchaseURL,
		course.Rating,
		course.IsPreview,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update course: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete course: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListCoursesParams,
) ([]Course, int, error) {
	params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	if params.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argIdx))
		args = append(args, params.Category)
		argIdx++
	}

	if params.Level != "" {
		conditions = append(conditions, fmt.Sprintf("level = $%d", argIdx))
		args = append(args, params.Level)
		argIdx++
	}

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(title ILIKE $%d OR description ILIKE $%d OR instructor ILIKE $%d)",
			argIdx, argIdx, argIdx))
		args = append(args, "%"+escapeLike(params.Search)+"%")
		argIdx++
	}

	whereClause := "TRUE"
	if len(conditions) > 0 {
		whereClause = strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM courses WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count courses: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM courses
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		courseColumns, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var courses []Course
	if err := r.db.SelectContext(ctx, &courses, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list courses: %w", err)
	}

	return courses, total, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM courses`); err != nil {
		return 0, fmt.Errorf("count courses: %w", err)
	}
	return count, nil
}

// Enroll inserts the enrollment row and bumps the course's students_count
// in one transaction, so the row and the counter never drift.
func (r *repository) Enroll(
	ctx context.Context,
	enrollment *Enrollment,
) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		insertQuery := `
			INSERT INTO enrollments (id, user_id, course_id)
			VALUES ($1, $2, $3)
			RETURNING created_at`

		err := tx.GetContext(ctx, &enrollment.CreatedAt, insertQuery,
			enrollment.ID,
			enrollment.UserID,
			enrollment.CourseID,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return fmt.Errorf("create enrollment: %w", core.ErrDuplicateKey)
			}
			return fmt.Errorf("create enrollment: %w", err)
		}

		countQuery := `
			UPDATE courses
			SET students_count = students_count + 1, updated_at = NOW()
			WHERE id = $1`

		if _, err := tx.ExecContext(ctx, countQuery, enrollment.CourseID); err != nil {
			return fmt.Errorf("increment students count: %w", err)
		}

		return nil
	})
}

func (r *repository) CountEnrollments(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM enrollments`); err != nil {
		return 0, fmt.Errorf("count enrollments: %w", err)
	}
	return count, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
