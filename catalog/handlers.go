package catalog

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

// RegisterRoutes mounts the catalog endpoints. Browsing is public; rating and
// reviewing go through requireAuth.
func (h *Handlers) RegisterRoutes(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Get("/categories", h.HandleListCategories())
	r.Get("/products", h.HandleListProducts())
	r.Get("/products/{id}", h.HandleGetProduct())

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/products/{id}/ratings", h.HandleRateProduct())
		r.Post("/products/{id}/reviews", h.HandleReviewProduct())
	})
}

// HandleListCategories godoc
// @Summary List categories
// @Tags Catalog
// @Produce json
// @Success 200 {array} catalog.CategoryResponse
// @Router /categories [get]
func (h *Handlers) HandleListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cats, err := h.service.ListCategories(r.Context())
		if err != nil {
			render.Error(w, r, err)
			return
		}
		render.JSON(w, http.StatusOK, cats)
	}
}

// HandleListProducts godoc
// @Summary List products
// @Description Lists products, optionally filtered by category, active flag and a strict price range.
// @Tags Catalog
// @Produce json
// @Param category query int false "Category ID"
// @Param active query bool false "Active flag"
// @Param price__gt query number false "Price strictly greater than"
// @Param price__lt query number false "Price strictly less than"
// @Success 200 {array} catalog.ProductListItem
// @Failure 400 {object} apperror.ErrorResponse "Malformed filter value"
// @Router /products [get]
func (h *Handlers) HandleListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := ParseProductFilter(r.URL.Query())
		if err != nil {
			render.Error(w, r, err)
			return
		}

		products, err := h.service.ListProducts(r.Context(), f)
		if err != nil {
			render.Error(w, r, err)
			return
		}
		render.JSON(w, http.StatusOK, products)
	}
}

// HandleGetProduct godoc
// @Summary Get product
// @Tags Catalog
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} catalog.ProductDetail
// @Failure 404 {object} apperror.ErrorResponse
// @Router /products/{id} [get]
func (h *Handlers) HandleGetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := productID(r)
		if err != nil {
			render.Error(w, r, err)
			return
		}

		p, err := h.service.GetProduct(r.Context(), id)
		if err != nil {
			render.Error(w, r, err)
			return
		}
		render.JSON(w, http.StatusOK, p)
	}
}

// HandleRateProduct godoc
// @Summary Rate product
// @Description Sets the caller's 1..5 star rating; rating again replaces the earlier score.
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param body body catalog.RatingRequest true "Stars"
// @Success 201 {object} catalog.RatingResponse
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Security BearerAuth
// @Router /products/{id}/ratings [post]
func (h *Handlers) HandleRateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.MustUserID(w, r)
		if !ok {
			return
		}
		id, err := productID(r)
		if err != nil {
			render.Error(w, r, err)
			return
		}

		var req RatingRequest
		if err := render.Decode(w, r, &req); err != nil {
			render.Error(w, r, err)
			return
		}

		resp, err := h.service.RateProduct(r.Context(), userID, id, req)
		if err != nil {
			render.Error(w, r, err)
			return
		}
		render.JSON(w, http.StatusCreated, resp)
	}
}

// HandleReviewProduct godoc
// @Summary Review product
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param body body catalog.ReviewRequest true "Review"
// @Success 201 {object} catalog.ReviewResponse
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Security BearerAuth
// @Router /products/{id}/reviews [post]
func (h *Handlers) HandleReviewProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.MustUserID(w, r)
		if !ok {
			return
		}
		id, err := productID(r)
		if err != nil {
			render.Error(w, r, err)
			return
		}

		var req ReviewRequest
		if err := render.Decode(w, r, &req); err != nil {
			render.Error(w, r, err)
			return
		}

		resp, err := h.service.ReviewProduct(r.Context(), userID, id, req)
		if err != nil {
			render.Error(w, r, err)
			return
		}
		render.JSON(w, http.StatusCreated, resp)
	}
}

func productID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.NewNotFoundError("product not found", nil)
	}
	return id, nil
}
