package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// Store persists user accounts.
type Store interface {
	CreateUser(ctx context.Context, u *User) error
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetUserByID(ctx context.Context, id int64) (*User, error)
}

// PgStore is the PostgreSQL implementation of Store.
type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a PgStore backed by the given pool.
func NewPgStore(db *pgxpool.Pool) *PgStore {
	return &PgStore{db: db}
}

const userColumns = `id, username, email, password, first_name, last_name,
	age, phone_number, status, is_active, date_registered`

// ScanUser reads a row selected with the user columns, in order.
func ScanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.HashedPassword, &u.FirstName, &u.LastName,
		&u.Age, &u.PhoneNumber, &u.Status, &u.IsActive, &u.DateRegistered,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts u and fills in the database-assigned fields.
func (s *PgStore) CreateUser(ctx context.Context, u *User) error {
	const op = "PgStore.CreateUser"

	query := `
		INSERT INTO users (username, email, password, first_name, last_name, age, phone_number, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, is_active, date_registered`

	err := s.db.QueryRow(ctx, query,
		u.Username, u.Email, u.HashedPassword, u.FirstName, u.LastName,
		u.Age, u.PhoneNumber, u.Status,
	).Scan(&u.ID, &u.IsActive, &u.DateRegistered)
	if err != nil {
		if uerr := UniqueViolation(err); uerr != nil {
			return fmt.Errorf("%s: %w", op, uerr)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetUserByUsername looks a user up by exact username.
func (s *PgStore) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	const op = "PgStore.GetUserByUsername"

	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	u, err := ScanUser(s.db.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUserByID looks a user up by primary key.
func (s *PgStore) GetUserByID(ctx context.Context, id int64) (*User, error) {
	const op = "PgStore.GetUserByID"

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := ScanUser(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// UniqueViolation maps a unique-constraint failure on the users table to
// ErrUsernameTaken or ErrEmailTaken. It returns nil for any other error.
func UniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return nil
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "username"):
		return ErrUsernameTaken
	case strings.Contains(pgErr.ConstraintName, "email"):
		return ErrEmailTaken
	}
	return nil
}
