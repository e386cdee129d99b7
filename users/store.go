package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/onlinestore/auth"
)

const profileColumns = `id, username, email, password, first_name, last_name,
	age, phone_number, status, is_active, date_registered`

// Store reads and updates user profiles.
type Store interface {
	ListUsers(ctx context.Context) ([]auth.User, error)
	GetUser(ctx context.Context, id int64) (*auth.User, error)
	UpdateUser(ctx context.Context, id int64, req *UpdateProfileRequest) (*auth.User, error)
}

// PgStore is the PostgreSQL implementation of Store.
type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a PgStore.
func NewPgStore(db *pgxpool.Pool) *PgStore {
	return &PgStore{db: db}
}

func (s *PgStore) ListUsers(ctx context.Context) ([]auth.User, error) {
	const op = "users.PgStore.ListUsers"

	rows, err := s.db.Query(ctx, `SELECT `+profileColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var list []auth.User
	for rows.Next() {
		u, err := auth.ScanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		list = append(list, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

func (s *PgStore) GetUser(ctx context.Context, id int64) (*auth.User, error) {
	const op = "users.PgStore.GetUser"

	u, err := auth.ScanUser(s.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, auth.ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// UpdateUser writes the non-nil fields of req and returns the updated row.
func (s *PgStore) UpdateUser(ctx context.Context, id int64, req *UpdateProfileRequest) (*auth.User, error) {
	const op = "users.PgStore.UpdateUser"

	var setClauses []string
	var args []any
	set := func(column string, value any) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.Email != nil {
		set("email", strings.ToLower(strings.TrimSpace(*req.Email)))
	}
	if req.FirstName != nil {
		set("first_name", *req.FirstName)
	}
	if req.LastName != nil {
		set("last_name", *req.LastName)
	}
	if req.Age != nil {
		set("age", *req.Age)
	}
	if req.PhoneNumber != nil {
		set("phone_number", *req.PhoneNumber)
	}
	if req.Status != nil {
		set("status", *req.Status)
	}

	if len(setClauses) == 0 {
		return s.GetUser(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(setClauses, ", "), len(args), profileColumns)

	u, err := auth.ScanUser(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, auth.ErrUserNotFound)
		}
		if uerr := auth.UniqueViolation(err); uerr != nil {
			return nil, fmt.Errorf("%s: %w", op, uerr)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}
