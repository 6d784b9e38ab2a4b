// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/renankelm10/cursera/internal/core"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateProfile(ctx context.Context, user *User) error
	UpdateAccessFlags(
		ctx context.Context,
		id string,
		isAdmin, hasPaidAccess bool,
	) (*User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SoftDelete(ctx context.Context, id string) error
	List(ctx context.Context, params ListUsersParams) ([]User, int, error)
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const userColumns = `id, email, password_hash, name, is_admin, has_paid_access,
	       bio, interests, created_at, updated_at, deleted_at`

func (r *repository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, email, password_hash, name, is_admin, has_paid_access, bio, interests)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, user, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Name,
		user.IsAdmin,
		user.HasPaidAccess,
		user.Bio,
		user.Interests,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE id = $1 AND deleted_at IS NULL`, userColumns)

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE email = $1 AND deleted_at IS NULL`, userColumns)

	var user User
	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

func (r *repository) UpdateProfile(ctx context.Context, user *User) error {
	query := `
		UPDATE users
		SET name = $2, bio = $3, interests = $4, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &user.UpdatedAt, query,
		user.ID,
		user.Name,
		user.Bio,
		user.Interests,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update profile: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	return nil
}

func (r *repository) UpdateAccessFlags(
	ctx context.Context,
	id string,
	isAdmin, hasPaidAccess bool,
) (*User, error) {
	query := fmt.Sprintf(`
		UPDATE users
		SET is_admin = $2, has_paid_access = $3, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING %s`, userColumns)

	var user User
	err := r.db.GetContext(ctx, &user, query, id, isAdmin, hasPaidAccess)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update access flags: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update access flags: %w", err)
	}

	return &user, nil
}

func (r *repository) UpdatePassword(
	ctx context.Context,
	id, passwordHash string,
) error {
	query := `
		UPDATE users
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) SoftDelete(ctx context.Context, id string) error {
	query := `
		UPDATE users
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete user: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	conditions = append(conditions, "deleted_at IS NULL")

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(email ILIKE $%d OR name ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+escapeLike(params.Search)+"%")
		argIdx++
	}

	if params.Paid != nil {
		conditions = append(
			conditions,
			fmt.Sprintf("has_paid_access = $%d", argIdx),
		)
		args = append(args, *params.Paid)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM users WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		userColumns, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var users []User
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	return users, total, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM users WHERE deleted_at IS NULL`
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
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
