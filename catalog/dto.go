package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/user/onlinestore/users"
)

const (
	// reviewDateLayout is day-month-year; product dates stay ISO.
	reviewDateLayout  = "02-01-2006"
	productDateLayout = "2006-01-02"
)

// FormatPrice renders an amount with two decimal places.
func FormatPrice(d decimal.Decimal) string {
	return d.StringFixed(2)
}

type CategoryResponse struct {
	CategoryName string `json:"category_name" example:"Phones"`
}

type PhotoResponse struct {
	Image string `json:"image" example:"products/phone-front.jpg"`
}

type RatingResponse struct {
	User  users.ProfileDetail `json:"user"`
	Stars int                 `json:"stars" example:"4"`
}

type ReviewResponse struct {
	Author       users.ProfileDetail `json:"author"`
	Text         string              `json:"text" example:"Works as advertised"`
	CreatedName  string              `json:"created_name" example:"17-10-2026"`
	ParentReview *int64              `json:"parent_review" example:"3"`
}

// ProductListItem is the compact product shape used in listings and carts.
type ProductListItem struct {
	ID            int64           `json:"id" example:"1"`
	ProductName   string          `json:"product_name" example:"Phone X"`
	ProductPhotos []PhotoResponse `json:"product_photo"`
	Price         string          `json:"price" example:"199.90"`
	AverageRating float64         `json:"average_rating" example:"4.5"`
}

// ProductDetail is the full product shape.
type ProductDetail struct {
	ID            int64            `json:"id" example:"1"`
	ProductName   string           `json:"product_name" example:"Phone X"`
	Category      CategoryResponse `json:"category"`
	ProductPhotos []PhotoResponse  `json:"product_photo"`
	Price         string           `json:"price" example:"199.90"`
	Description   string           `json:"description" example:"A phone"`
	ProductVideo  *string          `json:"product_video" example:"https://example.com/video.mp4"`
	Date          string           `json:"date" example:"2024-03-01"`
	Ratings       []RatingResponse `json:"ratings"`
	Active        bool             `json:"active" example:"true"`
	Reviews       []ReviewResponse `json:"reviews"`
	AverageRating float64          `json:"average_rating" example:"4.5"`
}

// RatingRequest rates a product.
type RatingRequest struct {
	Stars int `json:"stars" validate:"required,min=1,max=5" example:"5"`
}

// ReviewRequest posts a review, optionally as a reply.
type ReviewRequest struct {
	Text         string `json:"text" validate:"required,max=5000" example:"Great battery life"`
	ParentReview *int64 `json:"parent_review" validate:"omitempty,gt=0" example:"3"`
}

// AverageRating is the arithmetic mean of the stars, or 0 without ratings.
func AverageRating(ratings []Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Stars
	}
	return float64(sum) / float64(len(ratings))
}

func NewCategoryResponse(c Category) CategoryResponse {
	return CategoryResponse{CategoryName: c.Name}
}

func newPhotos(photos []ProductPhoto) []PhotoResponse {
	out := make([]PhotoResponse, 0, len(photos))
	for _, p := range photos {
		out = append(out, PhotoResponse{Image: p.Image})
	}
	return out
}

func NewRatingResponse(r Rating) RatingResponse {
	return RatingResponse{
		User:  users.NewProfileDetail(r.FirstName, r.LastName),
		Stars: r.Stars,
	}
}

func NewReviewResponse(r Review) ReviewResponse {
	return ReviewResponse{
		Author:       users.NewProfileDetail(r.FirstName, r.LastName),
		Text:         r.Text,
		CreatedName:  r.CreatedDate.Format(reviewDateLayout),
		ParentReview: r.ParentReview,
	}
}

// NewProductListItem maps a product with loaded photos and ratings.
func NewProductListItem(p Product) ProductListItem {
	return ProductListItem{
		ID:            p.ID,
		ProductName:   p.Name,
		ProductPhotos: newPhotos(p.Photos),
		Price:         FormatPrice(p.Price),
		AverageRating: AverageRating(p.Ratings),
	}
}

// NewProductDetail maps a product with all of its children loaded.
func NewProductDetail(p Product) ProductDetail {
	ratings := make([]RatingResponse, 0, len(p.Ratings))
	for _, r := range p.Ratings {
		ratings = append(ratings, NewRatingResponse(r))
	}
	reviews := make([]ReviewResponse, 0, len(p.Reviews))
	for _, r := range p.Reviews {
		reviews = append(reviews, NewReviewResponse(r))
	}

	return ProductDetail{
		ID:            p.ID,
		ProductName:   p.Name,
		Category:      CategoryResponse{CategoryName: p.CategoryName},
		ProductPhotos: newPhotos(p.Photos),
		Price:         FormatPrice(p.Price),
		Description:   p.Description,
		ProductVideo:  p.Video,
		Date:          p.Date.Format(productDateLayout),
		Ratings:       ratings,
		Active:        p.Active,
		Reviews:       reviews,
		AverageRating: AverageRating(p.Ratings),
	}
}
