package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/user/onlinestore/auth"
	"github.com/user/onlinestore/render"
)

type UserHandlers struct {
	service *Service
}

func NewUserHandlers(service *Service) *UserHandlers {
	return &UserHandlers{service: service}
}

// RegisterRoutes mounts the profile endpoints. The router must already carry
// auth.JWTMiddleware.
func (h *UserHandlers) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleListUsers())
	r.Get("/me", h.HandleGetUserProfile())
	r.Put("/me", h.HandleUpdateUserProfile())
}

// HandleListUsers godoc
// @Summary List user profiles
// @Tags Users
// @Produce json
// @Success 200 {array} users.ProfileResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 500 {object} apperror.ErrorResponse
// @Security BearerAuth
// @Router /users [get]
func (h *UserHandlers) HandleListUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profiles, err := h.service.ListProfiles(r.Context())
		if err != nil {
			render.Error(w, r, err)
			return
		}
		render.JSON(w, http.StatusOK, profiles)
	}
}

// HandleGetUserProfile godoc
// @Summary Get own profile
// @Tags Users
// @Produce json
// @Success 200 {object} users.ProfileResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Security BearerAuth
// @Router /users/me [get]
func (h *UserHandlers) HandleGetUserProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.MustUserID(w, r)
		if !ok {
			return
		}

		profile, err := h.service.GetProfile(r.Context(), userID)
		if err != nil {
			render.Error(w, r, err)
			return
		}
		render.JSON(w, http.StatusOK, profile)
	}
}

// HandleUpdateUserProfile godoc
// @Summary Update own profile
// @Description Partially updates email, names, age, phone number or status.
// @Tags Users
// @Accept json
// @Produce json
// @Param body body users.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} users.ProfileResponse
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Security BearerAuth
// @Router /users/me [put]
func (h *UserHandlers) HandleUpdateUserProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.MustUserID(w, r)
		if !ok {
			return
		}

		var req UpdateProfileRequest
		if err := render.Decode(w, r, &req); err != nil {
			render.Error(w, r, err)
			return
		}

		profile, err := h.service.UpdateProfile(r.Context(), userID, &req)
		if err != nil {
			render.Error(w, r, err)
			return
		}
		render.JSON(w, http.StatusOK, profile)
	}
}
