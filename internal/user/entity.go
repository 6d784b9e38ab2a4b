// AngelaMos | 2026
// entity.go

package user

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// User is the platform account row. PasswordHash is write-only from the
// server's perspective: it never appears on any outbound representation.
// The is_admin and has_paid_access flags are the only entitlement inputs
// and are mutated exclusively through admin endpoints.
type User struct {
	ID            string     `db:"id"`
	Email         string     `db:"email"`
	PasswordHash  string     `db:"password_hash"`
	Name          string     `db:"name"`
	IsAdmin       bool       `db:"is_admin"`
	HasPaidAccess bool       `db:"has_paid_access"`
	Bio           string     `db:"bio"`
	Interests     StringList `db:"interests"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
	DeletedAt     *time.Time `db:"deleted_at"`
}

func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

// StringList stores a string slice as a jsonb column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("marshal string list: %w", err)
	}
	return string(data), nil
}

func (l *StringList) Scan(src any) error {
	if src == nil {
		*l = nil
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("scan string list: unsupported type %T", src)
	}

	if len(data) == 0 {
		*l = nil
		return nil
	}

	return json.Unmarshal(data, (*[]string)(l))
}
