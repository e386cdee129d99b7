package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/user/onlinestore/apperror"
)

// Service implements the catalog operations.
type Service struct {
	store Store
}

// NewService creates a Service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) ListCategories(ctx context.Context) ([]CategoryResponse, error) {
	cats, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list categories", err)
	}
	out := make([]CategoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, NewCategoryResponse(c))
	}
	return out, nil
}

// ListProducts returns the products matching f in listing shape.
func (s *Service) ListProducts(ctx context.Context, f ProductFilter) ([]ProductListItem, error) {
	products, err := s.store.ListProducts(ctx, f)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list products", err)
	}
	out := make([]ProductListItem, 0, len(products))
	for _, p := range products {
		out = append(out, NewProductListItem(p))
	}
	return out, nil
}

func (s *Service) GetProduct(ctx context.Context, id int64) (ProductDetail, error) {
	p, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return ProductDetail{}, productError(id, err)
	}
	return NewProductDetail(*p), nil
}

// ProductsByIDs loads products for other packages, such as the cart.
func (s *Service) ProductsByIDs(ctx context.Context, ids []int64) (map[int64]Product, error) {
	products, err := s.store.ProductsByIDs(ctx, ids)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to load products", err)
	}
	return products, nil
}

// RateProduct sets the caller's rating of a product.
func (s *Service) RateProduct(ctx context.Context, userID, productID int64, req RatingRequest) (RatingResponse, error) {
	const op = "catalog.Service.RateProduct"

	r, err := s.store.UpsertRating(ctx, userID, productID, req.Stars)
	if err != nil {
		return RatingResponse{}, productError(productID, err)
	}

	slog.Debug("product rated", "op", op, "product_id", productID, "user_id", userID, "stars", req.Stars)
	return NewRatingResponse(*r), nil
}

// ReviewProduct posts a review by the caller.
func (s *Service) ReviewProduct(ctx context.Context, userID, productID int64, req ReviewRequest) (ReviewResponse, error) {
	r := &Review{
		AuthorID:     userID,
		ProductID:    productID,
		Text:         req.Text,
		ParentReview: req.ParentReview,
	}
	if err := s.store.CreateReview(ctx, r); err != nil {
		if errors.Is(err, ErrParentNotFound) {
			return ReviewResponse{}, apperror.NewFieldError("parent_review",
				fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", *req.ParentReview))
		}
		return ReviewResponse{}, productError(productID, err)
	}
	return NewReviewResponse(*r), nil
}

func productError(id int64, err error) error {
	if errors.Is(err, ErrProductNotFound) {
		return apperror.NewNotFoundError(fmt.Sprintf("product with ID %d not found", id), nil)
	}
	return apperror.NewDatabaseError("catalog query failed", err)
}
