package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/user/onlinestore/apperror"
)

// Authenticator checks a username and password against the stored account.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*User, error)
}

// Tokens issues and validates token pairs.
type Tokens interface {
	TokenIssuer
	TokenParser
}

// Service implements registration, login and token refresh.
type Service struct {
	store  Store
	tokens Tokens

	hashCost  int
	dummyOnce sync.Once
	dummyHash []byte
}

var _ Authenticator = (*Service)(nil)

// NewService creates a Service.
func NewService(store Store, tokens Tokens) *Service {
	return &Service{
		store:    store,
		tokens:   tokens,
		hashCost: bcrypt.DefaultCost,
	}
}

// Register creates the account and returns its public identity with a fresh token pair.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	const op = "auth.Service.Register"

	username := strings.TrimSpace(req.Username)
	if username == "" {
		return AuthResponse{}, apperror.NewFieldError("username", "this field may not be blank")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return AuthResponse{}, fmt.Errorf("%s: failed to hash password: %w", op, err)
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = DefaultStatus
	}

	user := &User{
		Username:       username,
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		HashedPassword: string(hashed),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Age:            req.Age,
		PhoneNumber:    req.PhoneNumber,
		Status:         status,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		switch {
		case errors.Is(err, ErrUsernameTaken):
			return AuthResponse{}, apperror.NewFieldError("username", "a user with that username already exists")
		case errors.Is(err, ErrEmailTaken):
			return AuthResponse{}, apperror.NewFieldError("email", "a user with that email already exists")
		}
		return AuthResponse{}, apperror.NewDatabaseError("failed to create user", fmt.Errorf("%s: %w", op, err))
	}

	pair, err := s.tokens.IssuePair(user)
	if err != nil {
		return AuthResponse{}, apperror.NewInternalError("failed to issue tokens", fmt.Errorf("%s: %w", op, err))
	}

	slog.Info("user registered", "op", op, "user_id", user.ID)
	return NewAuthResponse(user, pair), nil
}

// Authenticate returns the account when the password matches and the account is
// active. Unknown usernames still pay for a bcrypt comparison so response timing
// does not reveal which usernames exist.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	const op = "auth.Service.Authenticate"

	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *Service) dummy() []byte {
	s.dummyOnce.Do(func() {
		h, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), s.hashCost)
		if err != nil {
			slog.Error("failed to build dummy hash", "op", "auth.Service.dummy", "err", err)
			return
		}
		s.dummyHash = h
	})
	return s.dummyHash
}

// Login authenticates the credentials and issues a token pair.
func (s *Service) Login(ctx context.Context, req LoginRequest) (AuthResponse, error) {
	const op = "auth.Service.Login"

	user, err := s.Authenticate(ctx, strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return AuthResponse{}, apperror.NewValidationError("invalid credentials", nil)
		}
		return AuthResponse{}, apperror.NewDatabaseError("failed to get user", err)
	}

	pair, err := s.tokens.IssuePair(user)
	if err != nil {
		return AuthResponse{}, apperror.NewInternalError("failed to issue tokens", fmt.Errorf("%s: %w", op, err))
	}
	return NewAuthResponse(user, pair), nil
}

// Refresh exchanges a valid refresh token for a new pair. The account must
// still exist and be active.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	const op = "auth.Service.Refresh"

	claims, err := s.tokens.ParseToken(refreshToken, tokenTypeRefresh)
	if err != nil {
		return TokenPair{}, apperror.NewAuthError("invalid refresh token", err)
	}

	user, err := s.store.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return TokenPair{}, apperror.NewAuthError("invalid refresh token", err)
		}
		return TokenPair{}, apperror.NewDatabaseError("failed to get user", fmt.Errorf("%s: %w", op, err))
	}
	if !user.IsActive {
		return TokenPair{}, apperror.NewAuthError("account is disabled", nil)
	}

	pair, err := s.tokens.IssuePair(user)
	if err != nil {
		return TokenPair{}, apperror.NewInternalError("failed to issue tokens", fmt.Errorf("%s: %w", op, err))
	}
	return pair, nil
}
