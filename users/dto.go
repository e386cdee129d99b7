package users

import (
	"github.com/user/onlinestore/auth"
)

// dateLayout renders date_registered as a calendar date.
const dateLayout = "2006-01-02"

// ProfileResponse is the full profile listing shape. Every stored field except
// the password hash is included.
type ProfileResponse struct {
	ID             int64  `json:"id" example:"1"`
	Username       string `json:"username" example:"newuser"`
	Email          string `json:"email" example:"user@example.com"`
	FirstName      string `json:"first_name" example:"Aibek"`
	LastName       string `json:"last_name" example:"Nurlanov"`
	Age            *int   `json:"age" example:"27"`
	PhoneNumber    string `json:"phone_number" example:"+996555123456"`
	Status         string `json:"status" example:"simple"`
	DateRegistered string `json:"date_registered" example:"2024-03-01"`
	IsActive       bool   `json:"is_active" example:"true"`
}

// ProfileDetail is the short shape used wherever a user is embedded in
// another resource (ratings, reviews).
type ProfileDetail struct {
	FirstName string `json:"first_name" example:"Aibek"`
	LastName  string `json:"last_name" example:"Nurlanov"`
}

// UpdateProfileRequest is a partial update; nil fields are left unchanged.
type UpdateProfileRequest struct {
	Email       *string `json:"email,omitempty" validate:"omitempty,email,max=254"`
	FirstName   *string `json:"first_name,omitempty" validate:"omitempty,max=150"`
	LastName    *string `json:"last_name,omitempty" validate:"omitempty,max=150"`
	Age         *int    `json:"age,omitempty" validate:"omitempty,gte=0,lte=150"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,max=32"`
	Status      *string `json:"status,omitempty" validate:"omitempty,max=32"`
}

func (r *UpdateProfileRequest) empty() bool {
	return r.Email == nil && r.FirstName == nil && r.LastName == nil &&
		r.Age == nil && r.PhoneNumber == nil && r.Status == nil
}

// NewProfileResponse maps a stored user to the listing shape.
func NewProfileResponse(u *auth.User) ProfileResponse {
	return ProfileResponse{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Age:            u.Age,
		PhoneNumber:    u.PhoneNumber,
		Status:         u.Status,
		DateRegistered: u.DateRegistered.Format(dateLayout),
		IsActive:       u.IsActive,
	}
}

// NewProfileDetail maps a user to its first and last name.
func NewProfileDetail(firstName, lastName string) ProfileDetail {
	return ProfileDetail{FirstName: firstName, LastName: lastName}
}
