package catalog

import (
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/onlinestore/apperror"
)

func product(id, category int64, price string, active bool) Product {
	return Product{ID: id, CategoryID: category, Price: decimal.RequireFromString(price), Active: active}
}

func sampleProducts() []Product {
	return []Product{
		product(1, 1, "5.00", true),
		product(2, 1, "10.00", true),
		product(3, 2, "10.01", false),
		product(4, 2, "25.50", true),
		product(5, 1, "49.99", false),
		product(6, 3, "50.00", true),
		product(7, 3, "120.00", true),
	}
}

func ids(products []Product) []int64 {
	out := make([]int64, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestParseProductFilter(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		f, err := ParseProductFilter(url.Values{})
		require.NoError(t, err)
		assert.Equal(t, ProductFilter{}, f)
	})

	t.Run("AllParams", func(t *testing.T) {
		q := url.Values{
			"category":  {"2"},
			"active":    {"True"},
			"price__gt": {"10"},
			"price__lt": {"50.5"},
			"ordering":  {"-price"},
		}
		f, err := ParseProductFilter(q)
		require.NoError(t, err)
		require.NotNil(t, f.CategoryID)
		assert.Equal(t, int64(2), *f.CategoryID)
		require.NotNil(t, f.Active)
		assert.True(t, *f.Active)
		assert.True(t, f.PriceGT.Equal(decimal.NewFromInt(10)))
		assert.True(t, f.PriceLT.Equal(decimal.RequireFromString("50.5")))
	})

	t.Run("BlankValuesIgnored", func(t *testing.T) {
		f, err := ParseProductFilter(url.Values{"category": {""}, "active": {" "}, "price__gt": {""}})
		require.NoError(t, err)
		assert.Equal(t, ProductFilter{}, f)
	})

	t.Run("ActiveSpellings", func(t *testing.T) {
		for value, want := range map[string]bool{"true": true, "1": true, "FALSE": false, "0": false} {
			f, err := ParseProductFilter(url.Values{"active": {value}})
			require.NoError(t, err, value)
			require.NotNil(t, f.Active, value)
			assert.Equal(t, want, *f.Active, value)
		}
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := ParseProductFilter(url.Values{
			"category":  {"phones"},
			"active":    {"maybe"},
			"price__gt": {"abc"},
			"price__lt": {"10"},
		})
		appErr, ok := apperror.FromError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.ValidationError, appErr.Type)
		assert.Contains(t, appErr.Fields, "category")
		assert.Contains(t, appErr.Fields, "active")
		assert.Contains(t, appErr.Fields, "price__gt")
		assert.NotContains(t, appErr.Fields, "price__lt")
	})

	t.Run("PriceOutOfRange", func(t *testing.T) {
		for _, v := range []string{"1e300000000", "-1e300000000", "1e-300000000", "10000000000", "9999999999.999", "0.001"} {
			_, err := ParseProductFilter(url.Values{"price__gt": {v}, "price__lt": {v}})
			appErr, ok := apperror.FromError(err)
			require.True(t, ok, v)
			assert.Contains(t, appErr.Fields, "price__gt", v)
			assert.Contains(t, appErr.Fields, "price__lt", v)
		}
	})

	t.Run("PriceAtColumnBounds", func(t *testing.T) {
		f, err := ParseProductFilter(url.Values{"price__gt": {"-9999999999.99"}, "price__lt": {"9999999999.99"}})
		require.NoError(t, err)
		clause, args := f.Where()
		assert.Equal(t, "p.price > ?::numeric AND p.price < ?::numeric", clause)
		assert.Equal(t, []any{"-9999999999.99", "9999999999.99"}, args)
	})
}

func TestProductFilterApply(t *testing.T) {
	parse := func(t *testing.T, q url.Values) ProductFilter {
		t.Helper()
		f, err := ParseProductFilter(q)
		require.NoError(t, err)
		return f
	}

	t.Run("NoConstraints", func(t *testing.T) {
		assert.Equal(t, []int64{1, 2, 3, 4, 5, 6, 7}, ids(ProductFilter{}.Apply(sampleProducts())))
	})

	t.Run("ActiveTrueNeverReturnsInactive", func(t *testing.T) {
		got := parse(t, url.Values{"active": {"true"}}).Apply(sampleProducts())
		for _, p := range got {
			assert.True(t, p.Active)
		}
		assert.Equal(t, []int64{1, 2, 4, 6, 7}, ids(got))
	})

	t.Run("StrictPriceRange", func(t *testing.T) {
		got := parse(t, url.Values{"price__gt": {"10"}, "price__lt": {"50"}}).Apply(sampleProducts())
		assert.Equal(t, []int64{3, 4, 5}, ids(got))

		lo, hi := decimal.NewFromInt(10), decimal.NewFromInt(50)
		for _, p := range got {
			assert.True(t, p.Price.GreaterThan(lo) && p.Price.LessThan(hi))
		}
	})

	t.Run("Conjunction", func(t *testing.T) {
		got := parse(t, url.Values{"category": {"1"}, "active": {"true"}, "price__gt": {"5"}}).Apply(sampleProducts())
		assert.Equal(t, []int64{2}, ids(got))
	})

	t.Run("UnknownCategoryIsEmpty", func(t *testing.T) {
		got := parse(t, url.Values{"category": {"999"}}).Apply(sampleProducts())
		assert.Empty(t, got)
	})
}

func TestProductFilterWhere(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		clause, args := ProductFilter{}.Where()
		assert.Empty(t, clause)
		assert.Empty(t, args)
	})

	t.Run("All", func(t *testing.T) {
		cat := int64(3)
		active := false
		gt := decimal.RequireFromString("10.5")
		lt := decimal.NewFromInt(99)
		f := ProductFilter{CategoryID: &cat, Active: &active, PriceGT: &gt, PriceLT: &lt}

		clause, args := f.Where()
		assert.Equal(t, "p.category_id = ? AND p.active = ? AND p.price > ?::numeric AND p.price < ?::numeric", clause)
		assert.Equal(t, []any{int64(3), false, "10.5", "99"}, args)
	})
}
