package cart

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/onlinestore/apperror"
	"github.com/user/onlinestore/auth"
	"github.com/user/onlinestore/render"
)

type Handlers struct {
	service *Service
}

func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes mounts the cart endpoints. The router must already carry
// auth.JWTMiddleware.
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleGetCart())
	r.Post("/items", h.HandleAddItem())
	r.Patch("/items/{id}", h.HandleUpdateItem())
	r.Delete("/items/{id}", h.HandleRemoveItem())
}

// HandleGetCart godoc
// @Summary Get cart
// @Description Returns the caller's cart, creating an empty one on first access.
// @Tags Cart
// @Produce json
// @Success 200 {object} cart.CartResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Security BearerAuth
// @Router /cart [get]
func (h *Handlers) HandleGetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.MustUserID(w, r)
		if !ok {
			return
		}

		c, err := h.service.GetCart(r.Context(), userID)
		if err != nil {
			render.Error(w, r, err)
			return
		}
		render.JSON(w, http.StatusOK, c)
	}
}

// HandleAddItem godoc
// @Summary Add item to cart
// @Description Adds a product; adding a product already in the cart increases its quantity.
// @Tags Cart
// @Accept json
// @Produce json
// @Param body body cart.AddItemRequest true "Product and quantity"
// @Success 201 {object} cart.ItemResponse
// @Failure 400 {object} apperror.ErrorResponse "Unknown product_id or invalid quantity"
// @Failure 401 {object} apperror.ErrorResponse
// @Security BearerAuth
// @Router /cart/items [post]
func (h *Handlers) HandleAddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.MustUserID(w, r)
		if !ok {
			return
		}

		var req AddItemRequest
		if err := render.Decode(w, r, &req); err != nil {
			render.Error(w, r, err)
			return
		}

		item, err := h.service.AddItem(r.Context(), userID, req)
		if err != nil {
			render.Error(w, r, err)
			return
		}
		render.JSON(w, http.StatusCreated, item)
	}
}

// HandleUpdateItem godoc
// @Summary Set cart item quantity
// @Tags Cart
// @Accept json
// @Produce json
// @Param id path int true "Cart item ID"
// @Param body body cart.UpdateItemRequest true "New quantity"
// @Success 200 {object} cart.ItemResponse
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Security BearerAuth
// @Router /cart/items/{id} [patch]
func (h *Handlers) HandleUpdateItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.MustUserID(w, r)
		if !ok {
			return
		}
		itemID, err := itemIDParam(r)
		if err != nil {
			render.Error(w, r, err)
			return
		}

		var req UpdateItemRequest
		if err := render.Decode(w, r, &req); err != nil {
			render.Error(w, r, err)
			return
		}

		item, err := h.service.UpdateItem(r.Context(), userID, itemID, req)
		if err != nil {
			render.Error(w, r, err)
			return
		}
		render.JSON(w, http.StatusOK, item)
	}
}

// HandleRemoveItem godoc
// @Summary Remove cart item
// @Tags Cart
// @Param id path int true "Cart item ID"
// @Success 204
// @Failure 404 {object} apperror.ErrorResponse
// @Security BearerAuth
// @Router /cart/items/{id} [delete]
func (h *Handlers) HandleRemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.MustUserID(w, r)
		if !ok {
			return
		}
		itemID, err := itemIDParam(r)
		if err != nil {
			render.Error(w, r, err)
			return
		}

		if err := h.service.RemoveItem(r.Context(), userID, itemID); err != nil {
			render.Error(w, r, err)
			return
		}
		render.NoContent(w)
	}
}

func itemIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.NewNotFoundError("cart item not found", nil)
	}
	return id, nil
}
