package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/user/onlinestore/apperror"
	"github.com/user/onlinestore/catalog"
)

// ProductLookup loads products, with photos and ratings, by id.
type ProductLookup interface {
	ProductsByIDs(ctx context.Context, ids []int64) (map[int64]catalog.Product, error)
}

type Service struct {
	store    Store
	products ProductLookup
}

func NewService(store Store, products ProductLookup) *Service {
	return &Service{store: store, products: products}
}

// GetCart returns the user's cart, creating it on first access.
func (s *Service) GetCart(ctx context.Context, userID int64) (CartResponse, error) {
	c, err := s.store.GetOrCreateCart(ctx, userID)
	if err != nil {
		return CartResponse{}, apperror.NewDatabaseError("failed to load cart", err)
	}
	if err := s.attachProducts(ctx, c.Items); err != nil {
		return CartResponse{}, err
	}
	return NewCartResponse(c), nil
}

// AddItem puts a product in the user's cart. An unknown product is a
// validation error on product_id and leaves the cart unchanged.
func (s *Service) AddItem(ctx context.Context, userID int64, req AddItemRequest) (ItemResponse, error) {
	const op = "cart.Service.AddItem"

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	c, err := s.store.GetOrCreateCart(ctx, userID)
	if err != nil {
		return ItemResponse{}, apperror.NewDatabaseError("failed to load cart", err)
	}

	it, err := s.store.AddItem(ctx, c.ID, req.ProductID, quantity)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return ItemResponse{}, apperror.NewFieldError("product_id",
				fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", req.ProductID))
		}
		if errors.Is(err, ErrQuantityLimit) {
			return ItemResponse{}, apperror.NewFieldError("quantity",
				fmt.Sprintf("Ensure the total quantity is less than or equal to %d.", MaxQuantity))
		}
		return ItemResponse{}, apperror.NewDatabaseError("failed to add cart item", err)
	}

	slog.Debug("cart item added", "op", op, "cart_id", c.ID, "product_id", req.ProductID, "quantity", it.Quantity)
	return s.itemResponse(ctx, it)
}

// UpdateItem sets the quantity of one of the user's cart lines.
func (s *Service) UpdateItem(ctx context.Context, userID, itemID int64, req UpdateItemRequest) (ItemResponse, error) {
	c, err := s.store.GetOrCreateCart(ctx, userID)
	if err != nil {
		return ItemResponse{}, apperror.NewDatabaseError("failed to load cart", err)
	}

	it, err := s.store.SetQuantity(ctx, c.ID, itemID, req.Quantity)
	if err != nil {
		return ItemResponse{}, itemError(itemID, err)
	}
	return s.itemResponse(ctx, it)
}

// RemoveItem deletes one of the user's cart lines.
func (s *Service) RemoveItem(ctx context.Context, userID, itemID int64) error {
	c, err := s.store.GetOrCreateCart(ctx, userID)
	if err != nil {
		return apperror.NewDatabaseError("failed to load cart", err)
	}
	if err := s.store.RemoveItem(ctx, c.ID, itemID); err != nil {
		return itemError(itemID, err)
	}
	return nil
}

func (s *Service) itemResponse(ctx context.Context, it *Item) (ItemResponse, error) {
	items := []Item{*it}
	if err := s.attachProducts(ctx, items); err != nil {
		return ItemResponse{}, err
	}
	return NewItemResponse(items[0]), nil
}

func (s *Service) attachProducts(ctx context.Context, items []Item) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	products, err := s.products.ProductsByIDs(ctx, ids)
	if err != nil {
		return err
	}

	for i := range items {
		p, ok := products[items[i].ProductID]
		if !ok {
			return apperror.NewInternalError("cart references a missing product",
				fmt.Errorf("product %d not found", items[i].ProductID))
		}
		items[i].Product = p
	}
	return nil
}

func itemError(itemID int64, err error) error {
	if errors.Is(err, ErrItemNotFound) {
		return apperror.NewNotFoundError(fmt.Sprintf("cart item with ID %d not found", itemID), nil)
	}
	return apperror.NewDatabaseError("cart item update failed", err)
}
