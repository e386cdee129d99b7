package catalog

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/user/onlinestore/apperror"
)

// Query parameter names accepted by ParseProductFilter.
const (
	paramCategory = "category"
	paramActive   = "active"
	paramPriceGT  = "price__gt"
	paramPriceLT  = "price__lt"
)

// Price bounds follow the products.price column, NUMERIC(12,2).
const (
	priceScale     = 2
	priceIntDigits = 10
)

var priceLimit = decimal.New(1, priceIntDigits)

// ProductFilter is a conjunction of optional product constraints. A nil field
// imposes no constraint.
type ProductFilter struct {
	CategoryID *int64
	Active     *bool
	PriceGT    *decimal.Decimal
	PriceLT    *decimal.Decimal
}

// ParseProductFilter reads the filter from query parameters. Empty values are
// treated as absent and unknown parameters are ignored. Malformed values are
// reported together as a field validation error.
func ParseProductFilter(q url.Values) (ProductFilter, error) {
	var f ProductFilter
	fields := make(map[string][]string)

	if v := strings.TrimSpace(q.Get(paramCategory)); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			fields[paramCategory] = append(fields[paramCategory], "select a valid choice")
		} else {
			f.CategoryID = &id
		}
	}

	if v := strings.TrimSpace(q.Get(paramActive)); v != "" {
		switch strings.ToLower(v) {
		case "true", "1":
			b := true
			f.Active = &b
		case "false", "0":
			b := false
			f.Active = &b
		default:
			fields[paramActive] = append(fields[paramActive], "enter true or false")
		}
	}

	parsePrice := func(name string) *decimal.Decimal {
		v := strings.TrimSpace(q.Get(name))
		if v == "" {
			return nil
		}
		d, err := decimal.NewFromString(v)
		if err != nil {
			fields[name] = append(fields[name], "enter a number")
			return nil
		}
		// Check the exponent before anything rescales the coefficient.
		switch {
		case d.Exponent() < -priceScale:
			fields[name] = append(fields[name], fmt.Sprintf("ensure that there are no more than %d decimal places", priceScale))
			return nil
		case d.Exponent() > priceIntDigits || d.Abs().GreaterThanOrEqual(priceLimit):
			fields[name] = append(fields[name], fmt.Sprintf("ensure that there are no more than %d digits before the decimal point", priceIntDigits))
			return nil
		}
		return &d
	}
	f.PriceGT = parsePrice(paramPriceGT)
	f.PriceLT = parsePrice(paramPriceLT)

	if len(fields) > 0 {
		return ProductFilter{}, apperror.NewFieldsError(fields)
	}
	return f, nil
}

// Match reports whether p satisfies every constraint. Price bounds are strict.
func (f ProductFilter) Match(p Product) bool {
	if f.CategoryID != nil && p.CategoryID != *f.CategoryID {
		return false
	}
	if f.Active != nil && p.Active != *f.Active {
		return false
	}
	if f.PriceGT != nil && !p.Price.GreaterThan(*f.PriceGT) {
		return false
	}
	if f.PriceLT != nil && !p.Price.LessThan(*f.PriceLT) {
		return false
	}
	return true
}

// Apply returns the products that match, preserving order. It is the in-memory
// counterpart of Where and backs the store fakes in tests.
func (f ProductFilter) Apply(products []Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// Where renders the filter as a SQL condition over the products table aliased
// as "p", using ? placeholders. It returns an empty clause for an empty filter.
func (f ProductFilter) Where() (string, []any) {
	var conds []string
	var args []any

	if f.CategoryID != nil {
		conds = append(conds, "p.category_id = ?")
		args = append(args, *f.CategoryID)
	}
	if f.Active != nil {
		conds = append(conds, "p.active = ?")
		args = append(args, *f.Active)
	}
	if f.PriceGT != nil {
		conds = append(conds, "p.price > ?::numeric")
		args = append(args, f.PriceGT.String())
	}
	if f.PriceLT != nil {
		conds = append(conds, "p.price < ?::numeric")
		args = append(args, f.PriceLT.String())
	}

	return strings.Join(conds, " AND "), args
}
