package auth

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Username    string `json:"username" validate:"required,max=150" example:"newuser"`
	Email       string `json:"email" validate:"required,email,max=254" example:"user@example.com"`
	Password    string `json:"password" validate:"required,min=8,max=72" example:"strongpassword123"`
	FirstName   string `json:"first_name" validate:"max=150" example:"Aibek"`
	LastName    string `json:"last_name" validate:"max=150" example:"Nurlanov"`
	Age         *int   `json:"age" validate:"omitempty,gte=0,lte=150" example:"27"`
	PhoneNumber string `json:"phone_number" validate:"max=32" example:"+996555123456"`
	Status      string `json:"status" validate:"max=32" example:"simple"`
	// DateRegistered is accepted for compatibility but assigned by the database.
	DateRegistered *string `json:"date_registered,omitempty" swaggerignore:"true"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required" example:"newuser"`
	Password string `json:"password" validate:"required" example:"strongpassword123"`
}

// RefreshTokenRequest exchanges a refresh token for a new token pair.
type RefreshTokenRequest struct {
	Refresh string `json:"refresh" validate:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// TokenPair is a short-lived access token plus a longer-lived refresh token.
type TokenPair struct {
	Access  string `json:"access" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	Refresh string `json:"refresh" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// AuthUser is the user part of an AuthResponse.
type AuthUser struct {
	Username string `json:"username" example:"newuser"`
	Email    string `json:"email" example:"user@example.com"`
}

// AuthResponse is returned by registration and login. The created or
// authenticated account is never echoed back; only its public identity and
// a fresh token pair are.
type AuthResponse struct {
	User    AuthUser `json:"user"`
	Access  string   `json:"access"`
	Refresh string   `json:"refresh"`
}

// NewAuthResponse maps a user and its freshly issued tokens to the response shape.
func NewAuthResponse(u *User, pair TokenPair) AuthResponse {
	return AuthResponse{
		User: AuthUser{
			Username: u.Username,
			Email:    u.Email,
		},
		Access:  pair.Access,
		Refresh: pair.Refresh,
	}
}
