// AngelaMos | 2026
// repository.go

package lesson

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/renankelm10/cursera/internal/core"
)

type Repository interface {
	Create(ctx context.Context, lesson *Lesson) error
	GetByID(ctx context.Context, id string) (*Lesson, error)
	Update(ctx context.Context, lesson *Lesson) error
	Delete(ctx context.Context, id string) error
	ListByCourse(ctx context.Context, courseID string) ([]Lesson, error)
	Count(ctx context.Context) (int, error)

	UpsertProgress(ctx context.Context, progress *Progress) error
	ListCompletedLessonIDs(ctx context.Context, userID, courseID string) ([]string, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const lessonColumns = `id, course_id, title, description, video_url,
	       duration_minutes, order_index, is_free, created_at, updated_at`

func (r *repository) Create(ctx context.Context, lesson *Lesson) error {
	query := `
		INSERT INTO lessons (id, course_id, title, description, video_url,
		                     duration_minutes, order_index, is_free)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, lesson, query,
		lesson.ID,
		lesson.CourseID,
		lesson.Title,
		lesson.Description,
		lesson.VideoURL,
		lesson.DurationMinutes,
		lesson.OrderIndex,
		lesson.IsFree,
	)
	if err != nil {
		return fmt.Errorf("create lesson: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Lesson, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM lessons
		WHERE id = $1`, lessonColumns)

	var lesson Lesson
	err := r.db.GetContext(ctx, &lesson, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get lesson: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get lesson: %w", err)
	}

	return &lesson, nil
}

func (r *repository) Update(ctx context.Context, lesson *Lesson) error {
	query := `
		UPDATE lessons
		SET title = $2, description = $3, video_url = $4,
		    duration_minutes = $5, order_index = $6, is_free = $7,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &lesson.UpdatedAt, query,
		lesson.ID,
		lesson.Title,
		lesson.Description,
		lesson.VideoURL,
		lesson.DurationMinutes,
		lesson.OrderIndex,
		lesson.IsFree,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update lesson: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update lesson: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM lessons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete lesson: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ListByCourse(
	ctx context.Context,
	courseID string,
) ([]Lesson, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM lessons
		WHERE course_id = $1
		ORDER BY order_index ASC, created_at ASC`, lessonColumns)

	var lessons []Lesson
	if err := r.db.SelectContext(ctx, &lessons, query, courseID); err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}

	return lessons, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM lessons`); err != nil {
		return 0, fmt.Errorf("count lessons: %w", err)
	}
	return count, nil
}

func (r *repository) UpsertProgress(
	ctx context.Context,
	progress *Progress,
) error {
	query := `
		INSERT INTO lesson_progress (id, user_id, lesson_id, course_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, lesson_id) DO UPDATE
		SET completed_at = lesson_progress.completed_at
		RETURNING completed_at`

	err := r.db.GetContext(ctx, &progress.CompletedAt, query,
		progress.ID,
		progress.UserID,
		progress.LessonID,
		progress.CourseID,
	)
	if err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}

	return nil
}

func (r *repository) ListCompletedLessonIDs(
	ctx context.Context,
	userID, courseID string,
) ([]string, error) {
	query := `
		SELECT lesson_id
		FROM lesson_progress
		WHERE user_id = $1 AND course_id = $2
		ORDER BY completed_at ASC`

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, userID, courseID); err != nil {
		return nil, fmt.Errorf("list completed lessons: %w", err)
	}

	return ids, nil
}
