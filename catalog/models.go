// Package catalog serves the product catalog: categories, products with their
// photos, ratings and reviews, and the query filter used to narrow product
// listings. Reads go through sqlx, writes (ratings, reviews) through pgx.
package catalog

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Category groups products.
type Category struct {
	ID   int64  `db:"id"`
	Name string `db:"category_name"`
}

// Product is a catalog entry. Photos, Ratings and Reviews are loaded
// separately and are nil until the store fills them.
type Product struct {
	ID           int64           `db:"id"`
	Name         string          `db:"product_name"`
	CategoryID   int64           `db:"category_id"`
	CategoryName string          `db:"category_name"`
	Price        decimal.Decimal `db:"price"`
	Description  string          `db:"description"`
	Active       bool            `db:"active"`
	Video        *string         `db:"product_video"`
	Date         time.Time       `db:"date"`

	Photos  []ProductPhoto `db:"-"`
	Ratings []Rating       `db:"-"`
	Reviews []Review       `db:"-"`
}

type ProductPhoto struct {
	ID        int64  `db:"id"`
	ProductID int64  `db:"product_id"`
	Image     string `db:"image"`
}

// Rating is one user's 1..5 star score for a product. The user's names are
// joined in for display.
type Rating struct {
	ID        int64  `db:"id"`
	UserID    int64  `db:"user_id"`
	ProductID int64  `db:"product_id"`
	Stars     int    `db:"stars"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
}

// Review is a text review, optionally replying to another review of the same product.
type Review struct {
	ID           int64     `db:"id"`
	AuthorID     int64     `db:"author_id"`
	ProductID    int64     `db:"product_id"`
	Text         string    `db:"text"`
	CreatedDate  time.Time `db:"created_date"`
	ParentReview *int64    `db:"parent_review"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
}

var (
	ErrProductNotFound = errors.New("product not found")
	ErrParentNotFound  = errors.New("parent review not found for this product")
)
