package catalog

import "karam/internal/domain"

// SortCriterion orders a catalog listing. Unknown values leave the source
// order untouched.
type SortCriterion string

const (
	SortPriceAsc  SortCriterion = "price_asc"
	SortPriceDesc SortCriterion = "price_desc"
	SortRating    SortCriterion = "rating"
	SortPopular   SortCriterion = "popular"
)

// FamilyFilter narrows the family listing. Every field is optional; the
// search term matches name or address as a case-insensitive substring.
type FamilyFilter struct {
	Search      string
	City        string
	PackageType string
}

type ProductFilter struct {
	Search   string
	Category string
}

type FamilyListResponse struct {
	Families []domain.HostFamily `json:"families"`
	Count    int                 `json:"count"`
	// Fallback flags that storage was unreachable and the built-in
	// listing is being served instead.
	Fallback bool `json:"fallback,omitempty"`
}

type ProductListResponse struct {
	Products []domain.Product `json:"products"`
	Count    int              `json:"count"`
	Fallback bool             `json:"fallback,omitempty"`
}
