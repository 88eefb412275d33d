package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"karam/internal/domain"
)

type stubFamilySource struct {
	families []domain.HostFamily
	err      error
}

func (s *stubFamilySource) List(ctx context.Context) ([]domain.HostFamily, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]domain.HostFamily, len(s.families))
	copy(out, s.families)
	return out, nil
}

func (s *stubFamilySource) GetByID(ctx context.Context, id int64) (*domain.HostFamily, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, f := range s.families {
		if f.ID == id {
			return &f, nil
		}
	}
	return nil, errors.New("record not found")
}

type stubProductSource struct {
	products []domain.Product
	err      error
}

func (s *stubProductSource) List(ctx context.Context) ([]domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *stubProductSource) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, p := range s.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, errors.New("record not found")
}

func testFamilies() []domain.HostFamily {
	return []domain.HostFamily{
		{ID: 1, Name: "Dar Al-Noor", City: domain.CityMakkah, Address: "Al-Aziziyah district", Rating: 4.2,
			Packages: []domain.Package{{Type: domain.PackageSimple, PricePerPerson: 150}}},
		{ID: 2, Name: "Majlis Al-Karam", City: domain.CityMadinah, Address: "Quba road", Rating: 4.9,
			Packages: []domain.Package{{Type: domain.PackageMeal, PricePerPerson: 300}}},
		{ID: 3, Name: "Hejazi Guest House", City: domain.CityMakkah, Address: "Ajyad street", Rating: 4.5,
			Packages: []domain.Package{{Type: domain.PackageSimple, PricePerPerson: 120}, {Type: domain.PackageMeal, PricePerPerson: 260}}},
	}
}

func TestListFamilies_SearchMatchesNameOrAddress(t *testing.T) {
	svc := NewService(&stubFamilySource{families: testFamilies()}, &stubProductSource{})

	list, err := svc.ListFamilies(context.Background(), FamilyFilter{Search: "KARAM"}, "")
	assert.NoError(t, err)
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, int64(2), list.Families[0].ID)

	list, err = svc.ListFamilies(context.Background(), FamilyFilter{Search: "quba"}, "")
	assert.NoError(t, err)
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, int64(2), list.Families[0].ID)
}

func TestListFamilies_Facets(t *testing.T) {
	svc := NewService(&stubFamilySource{families: testFamilies()}, &stubProductSource{})

	list, err := svc.ListFamilies(context.Background(), FamilyFilter{City: "makkah"}, "")
	assert.NoError(t, err)
	assert.Equal(t, 2, list.Count)

	list, err = svc.ListFamilies(context.Background(), FamilyFilter{City: "makkah", PackageType: "meal"}, "")
	assert.NoError(t, err)
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, int64(3), list.Families[0].ID)
}

func TestListFamilies_SortByPriceAndRating(t *testing.T) {
	svc := NewService(&stubFamilySource{families: testFamilies()}, &stubProductSource{})

	list, err := svc.ListFamilies(context.Background(), FamilyFilter{}, SortPriceAsc)
	assert.NoError(t, err)
	assert.Equal(t, []int64{3, 1, 2}, familyIDs(list.Families))

	list, err = svc.ListFamilies(context.Background(), FamilyFilter{}, SortPriceDesc)
	assert.NoError(t, err)
	assert.Equal(t, []int64{2, 1, 3}, familyIDs(list.Families))

	list, err = svc.ListFamilies(context.Background(), FamilyFilter{}, SortRating)
	assert.NoError(t, err)
	assert.Equal(t, []int64{2, 3, 1}, familyIDs(list.Families))
}

func TestListFamilies_SortThenFilter(t *testing.T) {
	svc := NewService(&stubFamilySource{families: testFamilies()}, &stubProductSource{})

	list, err := svc.ListFamilies(context.Background(), FamilyFilter{City: "makkah"}, SortPriceAsc)
	assert.NoError(t, err)
	assert.Equal(t, []int64{3, 1}, familyIDs(list.Families))
}

func TestListFamilies_FallbackWhenStorageDown(t *testing.T) {
	svc := NewService(&stubFamilySource{err: errors.New("connection refused")}, &stubProductSource{})

	list, err := svc.ListFamilies(context.Background(), FamilyFilter{}, "")
	assert.NoError(t, err)
	assert.True(t, list.Fallback)
	assert.NotEmpty(t, list.Families)

	// the fallback listing is filterable like a live one
	list, err = svc.ListFamilies(context.Background(), FamilyFilter{City: "madinah"}, "")
	assert.NoError(t, err)
	for _, f := range list.Families {
		assert.Equal(t, domain.CityMadinah, f.City)
	}
}

func TestListProducts_FilterAndSort(t *testing.T) {
	products := []domain.Product{
		{ID: 1, Name: "Prayer beads", Description: "olive wood", Category: "gifts", Price: 45, Rating: 4.8, Sales: 24},
		{ID: 2, Name: "Prayer rug", Description: "embroidered", Category: "crafts", Price: 120, Rating: 4.9, Sales: 56},
		{ID: 3, Name: "Ajwa dates", Description: "1kg box", Category: "food", Price: 85, Rating: 5.0, Sales: 112},
	}
	svc := NewService(&stubFamilySource{}, &stubProductSource{products: products})

	list, err := svc.ListProducts(context.Background(), ProductFilter{Category: "crafts"}, "")
	assert.NoError(t, err)
	assert.Equal(t, 1, list.Count)

	list, err = svc.ListProducts(context.Background(), ProductFilter{Search: "prayer"}, SortPriceDesc)
	assert.NoError(t, err)
	assert.Equal(t, 2, list.Count)
	assert.Equal(t, int64(2), list.Products[0].ID)

	list, err = svc.ListProducts(context.Background(), ProductFilter{}, SortPopular)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), list.Products[0].ID)
}

func TestGetFamily_FallsBackForKnownID(t *testing.T) {
	svc := NewService(&stubFamilySource{err: errors.New("connection refused")}, &stubProductSource{})

	f, err := svc.GetFamily(context.Background(), 2)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), f.ID)

	_, err = svc.GetFamily(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func familyIDs(families []domain.HostFamily) []int64 {
	ids := make([]int64, 0, len(families))
	for _, f := range families {
		ids = append(ids, f.ID)
	}
	return ids
}
