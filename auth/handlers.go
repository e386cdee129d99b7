package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/user/onlinestore/render"
)

// Handlers exposes the auth Service over HTTP.
type Handlers struct {
	service *Service
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes mounts the auth endpoints. loginLimit wraps the login route
// only; pass nil to leave it unthrottled.
func (h *Handlers) RegisterRoutes(r chi.Router, loginLimit func(http.Handler) http.Handler) {
	r.Post("/register", h.HandleRegister())
	if loginLimit != nil {
		r.With(loginLimit).Post("/login", h.HandleLogin())
	} else {
		r.Post("/login", h.HandleLogin())
	}
	r.Post("/refresh", h.HandleRefreshToken())
}

// HandleRegister godoc
// @Summary User Registration
// @Description Registers a new user and returns the username, email and a token pair.
// @Tags Auth
// @Accept json
// @Produce json
// @Param registerBody body auth.RegisterRequest true "User registration details"
// @Success 201 {object} auth.AuthResponse "User created successfully"
// @Failure 400 {object} apperror.ErrorResponse "Validation error, including a taken username or email"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /auth/register [post]
func (h *Handlers) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := render.Decode(w, r, &req); err != nil {
			render.Error(w, r, err)
			return
		}

		resp, err := h.service.Register(r.Context(), req)
		if err != nil {
			render.Error(w, r, err)
			return
		}
		render.JSON(w, http.StatusCreated, resp)
	}
}

// HandleLogin godoc
// @Summary User Login
// @Description Logs in an active user and returns the username, email and a token pair.
// @Tags Auth
// @Accept json
// @Produce json
// @Param loginBody body auth.LoginRequest true "User login credentials"
// @Success 200 {object} auth.AuthResponse "Login successful"
// @Failure 400 {object} apperror.ErrorResponse "Invalid credentials or missing fields"
// @Failure 429 {object} apperror.ErrorResponse "Too many login attempts"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /auth/login [post]
func (h *Handlers) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := render.Decode(w, r, &req); err != nil {
			render.Error(w, r, err)
			return
		}

		resp, err := h.service.Login(r.Context(), req)
		if err != nil {
			render.Error(w, r, err)
			return
		}
		render.JSON(w, http.StatusOK, resp)
	}
}

// HandleRefreshToken godoc
// @Summary Refresh Tokens
// @Description Exchanges a valid refresh token for a new access and refresh token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param refreshBody body auth.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} auth.TokenPair "Tokens refreshed successfully"
// @Failure 400 {object} apperror.ErrorResponse "Missing refresh token"
// @Failure 401 {object} apperror.ErrorResponse "Invalid or expired refresh token"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /auth/refresh [post]
func (h *Handlers) HandleRefreshToken() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RefreshTokenRequest
		if err := render.Decode(w, r, &req); err != nil {
			render.Error(w, r, err)
			return
		}

		pair, err := h.service.Refresh(r.Context(), req.Refresh)
		if err != nil {
			render.Error(w, r, err)
			return
		}
		render.JSON(w, http.StatusOK, pair)
	}
}
