package cart

import (
	"github.com/user/onlinestore/catalog"
)

// AddItemRequest adds a product to the cart. Quantity defaults to 1.
type AddItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0" example:"3"`
	Quantity  *int  `json:"quantity,omitempty" validate:"omitempty,min=1,max=1000" example:"2"`
}

// UpdateItemRequest sets the quantity of a cart line.
type UpdateItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1,max=1000" example:"4"`
}

type ItemResponse struct {
	ID            int64                   `json:"id" example:"12"`
	Product       catalog.ProductListItem `json:"product"`
	Quantity      int                     `json:"quantity" example:"2"`
	GetTotalPrice string                  `json:"get_total_price" example:"399.80"`
}

type CartResponse struct {
	ID         int64          `json:"id" example:"1"`
	User       int64          `json:"user" example:"5"`
	Items      []ItemResponse `json:"items"`
	TotalPrice string         `json:"total_price" example:"399.80"`
}

// NewItemResponse maps an item whose Product is loaded.
func NewItemResponse(it Item) ItemResponse {
	return ItemResponse{
		ID:            it.ID,
		Product:       catalog.NewProductListItem(it.Product),
		Quantity:      it.Quantity,
		GetTotalPrice: catalog.FormatPrice(LineTotal(it.Product.Price, it.Quantity)),
	}
}

// NewCartResponse maps a cart whose items have their products loaded.
func NewCartResponse(c *Cart) CartResponse {
	items := make([]ItemResponse, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, NewItemResponse(it))
	}
	return CartResponse{
		ID:         c.ID,
		User:       c.UserID,
		Items:      items,
		TotalPrice: catalog.FormatPrice(TotalPrice(c.Items)),
	}
}
