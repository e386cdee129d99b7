package catalog

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAverageRating(t *testing.T) {
	assert.Equal(t, 0.0, AverageRating(nil))
	assert.Equal(t, 4.0, AverageRating([]Rating{{Stars: 4}}))
	assert.InDelta(t, 3.6667, AverageRating([]Rating{{Stars: 5}, {Stars: 4}, {Stars: 2}}), 0.0001)
}

func detailedProduct() Product {
	video := "https://example.com/v.mp4"
	parent := int64(10)
	return Product{
		ID:           1,
		Name:         "Phone X",
		CategoryID:   2,
		CategoryName: "Phones",
		Price:        decimal.RequireFromString("199.9"),
		Description:  "A phone",
		Active:       true,
		Video:        &video,
		Date:         time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC),
		Photos:       []ProductPhoto{{ID: 1, ProductID: 1, Image: "front.jpg"}},
		Ratings: []Rating{
			{ID: 1, UserID: 1, ProductID: 1, Stars: 5, FirstName: "Ann", LastName: "Lee"},
			{ID: 2, UserID: 2, ProductID: 1, Stars: 4, FirstName: "Bo", LastName: "Kim"},
		},
		Reviews: []Review{
			{ID: 11, AuthorID: 2, ProductID: 1, Text: "agreed", ParentReview: &parent,
				CreatedDate: time.Date(2024, 5, 9, 13, 0, 0, 0, time.UTC), FirstName: "Bo", LastName: "Kim"},
		},
	}
}

func TestNewProductListItem(t *testing.T) {
	data, err := json.Marshal(NewProductListItem(detailedProduct()))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": 1,
		"product_name": "Phone X",
		"product_photo": [{"image": "front.jpg"}],
		"price": "199.90",
		"average_rating": 4.5
	}`, string(data))
}

func TestNewProductDetail(t *testing.T) {
	data, err := json.Marshal(NewProductDetail(detailedProduct()))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": 1,
		"product_name": "Phone X",
		"category": {"category_name": "Phones"},
		"product_photo": [{"image": "front.jpg"}],
		"price": "199.90",
		"description": "A phone",
		"product_video": "https://example.com/v.mp4",
		"date": "2024-03-07",
		"ratings": [
			{"user": {"first_name": "Ann", "last_name": "Lee"}, "stars": 5},
			{"user": {"first_name": "Bo", "last_name": "Kim"}, "stars": 4}
		],
		"active": true,
		"reviews": [
			{"author": {"first_name": "Bo", "last_name": "Kim"}, "text": "agreed", "created_name": "09-05-2024", "parent_review": 10}
		],
		"average_rating": 4.5
	}`, string(data))
}

func TestNewProductDetailWithoutChildren(t *testing.T) {
	p := Product{ID: 2, Name: "Bare", Price: decimal.NewFromInt(3), Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)}
	d := NewProductDetail(p)

	assert.Equal(t, "3.00", d.Price)
	assert.Equal(t, 0.0, d.AverageRating)
	assert.NotNil(t, d.Ratings)
	assert.NotNil(t, d.Reviews)
	assert.NotNil(t, d.ProductPhotos)
	assert.Nil(t, d.ProductVideo)
	assert.Equal(t, "2024-01-02", d.Date)
}
