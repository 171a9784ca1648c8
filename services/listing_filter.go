package services

import (
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"explorerhub/models"
)

type SortOrder string

const (
	SortRecommended SortOrder = "recommended"
	SortRating      SortOrder = "rating"
	SortReviews     SortOrder = "reviews"
	SortPriceLow    SortOrder = "price-low"
	SortPriceHigh   SortOrder = "price-high"
)

const (
	MinPriceLevel = 1
	MaxPriceLevel = 4
	MaxRating     = 5
)

type ListingFilter struct {
	Search     string    `json:"search"`
	Categories []string  `json:"categories"`
	MinPrice   int       `json:"min_price"`
	MaxPrice   int       `json:"max_price"`
	MinRating  float64   `json:"min_rating"`
	Sort       SortOrder `json:"sort"`
}

// DefaultListingFilter matches every active listing in backend order.
func DefaultListingFilter() ListingFilter {
	return ListingFilter{
		Categories: []string{},
		MinPrice:   MinPriceLevel,
		MaxPrice:   MaxPriceLevel,
		Sort:       SortRecommended,
	}
}

// ParseListingFilter reads a filter from explore query parameters. Field
// errors are keyed by parameter name.
func ParseListingFilter(q url.Values) (ListingFilter, map[string]string) {
	f := DefaultListingFilter()
	errs := map[string]string{}

	f.Search = strings.TrimSpace(q.Get("search"))
	if f.Search == "" {
		f.Search = strings.TrimSpace(q.Get("q"))
	}

	for _, raw := range q["category"] {
		for _, c := range strings.Split(raw, ",") {
			if c = strings.TrimSpace(c); c != "" {
				f.Categories = append(f.Categories, c)
			}
		}
	}

	if raw := q.Get("min_price"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < MinPriceLevel || n > MaxPriceLevel {
			errs["min_price"] = "range"
		} else {
			f.MinPrice = n
		}
	}
	if raw := q.Get("max_price"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < MinPriceLevel || n > MaxPriceLevel {
			errs["max_price"] = "range"
		} else {
			f.MaxPrice = n
		}
	}
	if _, bad := errs["min_price"]; !bad && f.MinPrice > f.MaxPrice {
		if _, bad := errs["max_price"]; !bad {
			errs["min_price"] = "ltefield"
		}
	}

	if raw := q.Get("min_rating"); raw != "" {
		r, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(r) || math.IsInf(r, 0) || r < 0 || r > MaxRating {
			errs["min_rating"] = "range"
		} else {
			f.MinRating = r
		}
	}

	switch s := SortOrder(q.Get("sort")); s {
	case SortRating, SortReviews, SortPriceLow, SortPriceHigh:
		f.Sort = s
	default:
		f.Sort = SortRecommended
	}

	if len(errs) > 0 {
		return f, errs
	}
	return f, nil
}

// ApplyListingFilter returns the active businesses matching f, ordered by
// f.Sort. The input slice is left untouched; ties keep input order. Missing
// image and tag lists come back empty rather than null.
func ApplyListingFilter(businesses []models.Business, f ListingFilter) []models.Business {
	search := strings.ToLower(f.Search)
	out := make([]models.Business, 0, len(businesses))
	for _, b := range businesses {
		if !b.IsActive {
			continue
		}
		if search != "" && !matchesSearch(b, search) {
			continue
		}
		if len(f.Categories) > 0 && !contains(f.Categories, b.Category) {
			continue
		}
		if b.PriceLevel < f.MinPrice || b.PriceLevel > f.MaxPrice {
			continue
		}
		if f.MinRating > 0 && b.Rating < f.MinRating {
			continue
		}
		if b.Images == nil {
			b.Images = []string{}
		}
		if b.Tags == nil {
			b.Tags = []string{}
		}
		out = append(out, b)
	}

	var less func(i, j int) bool
	switch f.Sort {
	case SortRating:
		less = func(i, j int) bool { return out[i].Rating > out[j].Rating }
	case SortReviews:
		less = func(i, j int) bool { return out[i].ReviewCount > out[j].ReviewCount }
	case SortPriceLow:
		less = func(i, j int) bool { return out[i].PriceLevel < out[j].PriceLevel }
	case SortPriceHigh:
		less = func(i, j int) bool { return out[i].PriceLevel > out[j].PriceLevel }
	}
	if less != nil {
		sort.SliceStable(out, less)
	}
	return out
}

func matchesSearch(b models.Business, lowered string) bool {
	for _, field := range []string{b.Name, b.Description, b.Location.City, b.Location.State} {
		if strings.Contains(strings.ToLower(field), lowered) {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
