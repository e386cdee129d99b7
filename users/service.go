// Package users exposes stored user profiles: the caller's own profile, a
// partial update of it, and the profile listing.
package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/user/onlinestore/apperror"
	"github.com/user/onlinestore/auth"
)

// Service implements the profile operations.
type Service struct {
	store Store
}

// NewService creates a Service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// GetProfile returns the profile of user id.
func (s *Service) GetProfile(ctx context.Context, id int64) (ProfileResponse, error) {
	u, err := s.store.GetUser(ctx, id)
	if err != nil {
		return ProfileResponse{}, storeError(id, err)
	}
	return NewProfileResponse(u), nil
}

// ListProfiles returns every stored profile ordered by id.
func (s *Service) ListProfiles(ctx context.Context) ([]ProfileResponse, error) {
	list, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list users", err)
	}

	resp := make([]ProfileResponse, 0, len(list))
	for i := range list {
		resp = append(resp, NewProfileResponse(&list[i]))
	}
	return resp, nil
}

// UpdateProfile applies a partial update to user id.
func (s *Service) UpdateProfile(ctx context.Context, id int64, req *UpdateProfileRequest) (ProfileResponse, error) {
	if req.empty() {
		return ProfileResponse{}, apperror.NewValidationError("no fields provided for update", nil)
	}

	u, err := s.store.UpdateUser(ctx, id, req)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			return ProfileResponse{}, apperror.NewFieldError("email", "a user with that email already exists")
		}
		return ProfileResponse{}, storeError(id, err)
	}
	return NewProfileResponse(u), nil
}

func storeError(id int64, err error) error {
	if errors.Is(err, auth.ErrUserNotFound) {
		return apperror.NewNotFoundError(fmt.Sprintf("user with ID %d not found", id), nil)
	}
	return apperror.NewDatabaseError("failed to load user profile", err)
}
