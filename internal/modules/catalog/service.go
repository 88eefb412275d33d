package catalog

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"

	"karam/internal/domain"
)

var ErrNotFound = errors.New("catalog item not found")

type Service struct {
	families FamilySource
	products ProductSource
}

func NewService(families FamilySource, products ProductSource) *Service {
	return &Service{families: families, products: products}
}

// ListFamilies loads, sorts and filters the family catalog. When storage is
// unreachable the built-in listing is served instead of an error.
func (s *Service) ListFamilies(ctx context.Context, filter FamilyFilter, criterion SortCriterion) (FamilyListResponse, error) {
	fallback := false
	families, err := s.families.List(ctx)
	if err != nil {
		log.Printf("catalog: families listing unavailable, serving fallback: %v", err)
		families = fallbackFamilies()
		fallback = true
	}

	sortFamilies(families, criterion)
	families = filterFamilies(families, filter)

	return FamilyListResponse{Families: families, Count: len(families), Fallback: fallback}, nil
}

func (s *Service) GetFamily(ctx context.Context, id int64) (*domain.HostFamily, error) {
	f, err := s.families.GetByID(ctx, id)
	if err != nil {
		for _, fb := range fallbackFamilies() {
			if fb.ID == id {
				return &fb, nil
			}
		}
		return nil, ErrNotFound
	}
	return f, nil
}

func (s *Service) ListProducts(ctx context.Context, filter ProductFilter, criterion SortCriterion) (ProductListResponse, error) {
	fallback := false
	products, err := s.products.List(ctx)
	if err != nil {
		log.Printf("catalog: product listing unavailable, serving fallback: %v", err)
		products = fallbackProducts()
		fallback = true
	}

	sortProducts(products, criterion)
	products = filterProducts(products, filter)

	return ProductListResponse{Products: products, Count: len(products), Fallback: fallback}, nil
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func filterFamilies(families []domain.HostFamily, f FamilyFilter) []domain.HostFamily {
	term := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]domain.HostFamily, 0, len(families))
	for _, fam := range families {
		if term != "" &&
			!strings.Contains(strings.ToLower(fam.Name), term) &&
			!strings.Contains(strings.ToLower(fam.Address), term) {
			continue
		}
		if f.City != "" && string(fam.City) != f.City {
			continue
		}
		if f.PackageType != "" {
			t, ok := domain.ParsePackageType(f.PackageType)
			if !ok || !fam.HasPackage(t) {
				continue
			}
		}
		out = append(out, fam)
	}
	return out
}

func sortFamilies(families []domain.HostFamily, criterion SortCriterion) {
	switch criterion {
	case SortPriceAsc:
		sort.SliceStable(families, func(i, j int) bool { return families[i].Price() < families[j].Price() })
	case SortPriceDesc:
		sort.SliceStable(families, func(i, j int) bool { return families[i].Price() > families[j].Price() })
	case SortRating, SortPopular:
		sort.SliceStable(families, func(i, j int) bool { return families[i].Rating > families[j].Rating })
	}
}

func filterProducts(products []domain.Product, f ProductFilter) []domain.Product {
	term := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		out = append(out, p)
	}
	return out
}

func sortProducts(products []domain.Product, criterion SortCriterion) {
	switch criterion {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price > products[j].Price })
	case SortRating:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Rating > products[j].Rating })
	case SortPopular:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Sales > products[j].Sales })
	}
}
