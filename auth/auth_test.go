package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/onlinestore/config"
)

const testSecret = "test-secret-with-at-least-32-characters!"

type mockStore struct {
	mock.Mock
}

func (m *mockStore) CreateUser(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockStore) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*User)
	return u, args.Error(1)
}

func (m *mockStore) GetUserByID(ctx context.Context, id int64) (*User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*User)
	return u, args.Error(1)
}

func newTestIssuer() *JWTIssuer {
	return NewJWTIssuer(&config.AuthConfig{
		JWTSecret:            testSecret,
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 24 * time.Hour,
	})
}

func newTestService(store Store) *Service {
	s := NewService(store, newTestIssuer())
	s.hashCost = bcrypt.MinCost
	return s
}

func newStoredUser(t *testing.T, id int64, username, password string, active bool) *User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &User{
		ID:             id,
		Username:       username,
		Email:          username + "@example.com",
		HashedPassword: string(hashed),
		Status:         DefaultStatus,
		IsActive:       active,
		DateRegistered: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}
