package auth

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/user/onlinestore/apperror"
)

func TestServiceRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Regular", func(t *testing.T) {
		store := new(mockStore)
		store.On("CreateUser", mock.Anything, mock.AnythingOfType("*auth.User")).
			Run(func(args mock.Arguments) {
				u := args.Get(1).(*User)
				u.ID = 7
				u.IsActive = true
			}).
			Return(nil)

		svc := newTestService(store)
		resp, err := svc.Register(ctx, RegisterRequest{
			Username: "alice",
			Email:    "Alice@Example.com",
			Password: "s3cretpassword",
		})
		require.NoError(t, err)

		assert.Equal(t, "alice", resp.User.Username)
		assert.Equal(t, "alice@example.com", resp.User.Email)
		assert.NotEmpty(t, resp.Access)
		assert.NotEmpty(t, resp.Refresh)

		created := store.Calls[0].Arguments.Get(1).(*User)
		assert.Equal(t, DefaultStatus, created.Status)
		assert.NotEqual(t, "s3cretpassword", created.HashedPassword)
		store.AssertExpectations(t)
	})

	t.Run("ResponseShape", func(t *testing.T) {
		store := new(mockStore)
		store.On("CreateUser", mock.Anything, mock.Anything).Return(nil)

		resp, err := newTestService(store).Register(ctx, RegisterRequest{
			Username: "bob",
			Email:    "bob@example.com",
			Password: "s3cretpassword",
		})
		require.NoError(t, err)

		data, err := json.Marshal(resp)
		require.NoError(t, err)

		var body map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(data, &body))
		assert.Len(t, body, 3)
		assert.Contains(t, body, "user")
		assert.Contains(t, body, "access")
		assert.Contains(t, body, "refresh")

		var user map[string]any
		require.NoError(t, json.Unmarshal(body["user"], &user))
		assert.Equal(t, map[string]any{"username": "bob", "email": "bob@example.com"}, user)
		assert.NotContains(t, string(data), "s3cretpassword")
	})

	t.Run("UsernameTaken", func(t *testing.T) {
		store := new(mockStore)
		store.On("CreateUser", mock.Anything, mock.Anything).
			Return(errors.Join(errors.New("PgStore.CreateUser"), ErrUsernameTaken))

		_, err := newTestService(store).Register(ctx, RegisterRequest{
			Username: "alice", Email: "a@example.com", Password: "s3cretpassword",
		})
		appErr, ok := apperror.FromError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.ValidationError, appErr.Type)
		assert.Contains(t, appErr.Fields, "username")
	})

	t.Run("BlankUsername", func(t *testing.T) {
		store := new(mockStore)

		_, err := newTestService(store).Register(ctx, RegisterRequest{
			Username: "   ", Email: "a@example.com", Password: "s3cretpassword",
		})
		appErr, ok := apperror.FromError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.ValidationError, appErr.Type)
		assert.Contains(t, appErr.Fields, "username")
		store.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("EmailTaken", func(t *testing.T) {
		store := new(mockStore)
		store.On("CreateUser", mock.Anything, mock.Anything).Return(ErrEmailTaken)

		_, err := newTestService(store).Register(ctx, RegisterRequest{
			Username: "alice", Email: "a@example.com", Password: "s3cretpassword",
		})
		appErr, ok := apperror.FromError(err)
		require.True(t, ok)
		assert.Contains(t, appErr.Fields, "email")
	})

	t.Run("DatabaseFailure", func(t *testing.T) {
		store := new(mockStore)
		store.On("CreateUser", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

		_, err := newTestService(store).Register(ctx, RegisterRequest{
			Username: "alice", Email: "a@example.com", Password: "s3cretpassword",
		})
		appErr, ok := apperror.FromError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.DatabaseError, appErr.Type)
	})
}

func TestServiceLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Regular", func(t *testing.T) {
		store := new(mockStore)
		store.On("GetUserByUsername", mock.Anything, "alice").
			Return(newStoredUser(t, 1, "alice", "correct-horse", true), nil)

		resp, err := newTestService(store).Login(ctx, LoginRequest{Username: "alice", Password: "correct-horse"})
		require.NoError(t, err)
		assert.Equal(t, "alice", resp.User.Username)
		assert.NotEmpty(t, resp.Access)
		assert.NotEmpty(t, resp.Refresh)
	})

	t.Run("SurroundingSpaces", func(t *testing.T) {
		store := new(mockStore)
		store.On("GetUserByUsername", mock.Anything, "alice").
			Return(newStoredUser(t, 1, "alice", "correct-horse", true), nil)

		resp, err := newTestService(store).Login(ctx, LoginRequest{Username: "  alice ", Password: "correct-horse"})
		require.NoError(t, err)
		assert.Equal(t, "alice", resp.User.Username)
	})

	rejected := []struct {
		name     string
		user     *User
		storeErr error
		password string
	}{
		{name: "WrongPassword", user: newStoredUser(t, 1, "alice", "correct-horse", true), password: "battery-staple"},
		{name: "UnknownUser", storeErr: ErrUserNotFound, password: "correct-horse"},
		{name: "Inactive", user: newStoredUser(t, 1, "alice", "correct-horse", false), password: "correct-horse"},
	}
	for _, tc := range rejected {
		t.Run(tc.name, func(t *testing.T) {
			store := new(mockStore)
			store.On("GetUserByUsername", mock.Anything, "alice").Return(tc.user, tc.storeErr)

			resp, err := newTestService(store).Login(ctx, LoginRequest{Username: "alice", Password: tc.password})
			require.Error(t, err)
			assert.Empty(t, resp.Access)
			assert.Empty(t, resp.Refresh)

			appErr, ok := apperror.FromError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.ValidationError, appErr.Type)
			assert.Equal(t, []string{"invalid credentials"}, appErr.Fields[apperror.NonFieldErrors])
		})
	}

	t.Run("StoreFailure", func(t *testing.T) {
		store := new(mockStore)
		store.On("GetUserByUsername", mock.Anything, "alice").Return(nil, errors.New("timeout"))

		_, err := newTestService(store).Login(ctx, LoginRequest{Username: "alice", Password: "x"})
		appErr, ok := apperror.FromError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.DatabaseError, appErr.Type)
	})
}

func TestServiceRefresh(t *testing.T) {
	ctx := context.Background()
	user := newStoredUser(t, 5, "carol", "pw-pw-pw-pw", true)

	t.Run("Regular", func(t *testing.T) {
		store := new(mockStore)
		store.On("GetUserByID", mock.Anything, int64(5)).Return(user, nil)
		svc := newTestService(store)

		pair, err := svc.tokens.IssuePair(user)
		require.NoError(t, err)

		next, err := svc.Refresh(ctx, pair.Refresh)
		require.NoError(t, err)
		assert.NotEqual(t, pair.Refresh, next.Refresh)
		assert.NotEmpty(t, next.Access)
	})

	t.Run("AccessTokenRejected", func(t *testing.T) {
		svc := newTestService(new(mockStore))
		pair, err := svc.tokens.IssuePair(user)
		require.NoError(t, err)

		_, err = svc.Refresh(ctx, pair.Access)
		assert.True(t, apperror.IsAuthError(err))
	})

	t.Run("DeletedUser", func(t *testing.T) {
		store := new(mockStore)
		store.On("GetUserByID", mock.Anything, int64(5)).Return(nil, ErrUserNotFound)
		svc := newTestService(store)
		pair, err := svc.tokens.IssuePair(user)
		require.NoError(t, err)

		_, err = svc.Refresh(ctx, pair.Refresh)
		assert.True(t, apperror.IsAuthError(err))
	})
}
