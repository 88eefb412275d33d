package domain

import "time"

type City string

const (
	CityMakkah  City = "makkah"
	CityMadinah City = "madinah"
)

type PackageType string

const (
	PackageSimple PackageType = "simple"
	PackageMeal   PackageType = "meal"
)

func ParsePackageType(s string) (PackageType, bool) {
	switch PackageType(s) {
	case PackageSimple, PackageMeal:
		return PackageType(s), true
	}
	return "", false
}

// DefaultPrice is the per-person placeholder used when the package record
// cannot be resolved from storage.
func (t PackageType) DefaultPrice() float64 {
	if t == PackageMeal {
		return 300
	}
	return 150
}

// HostFamily is a hosting family listed in the catalog.
type HostFamily struct {
	ID           int64      `json:"id"`
	OwnerID      int64      `json:"owner_id"`
	Name         string     `json:"name"`
	City         City       `json:"city"`
	Address      string     `json:"address"`
	Image        string     `json:"image,omitempty"`
	Rating       float64    `json:"rating"`
	TotalReviews int        `json:"total_reviews"`
	Capacity     int        `json:"capacity"`
	Features     []string   `json:"features,omitempty" gorm:"serializer:json"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"-"`

	Packages []Package `json:"packages,omitempty" gorm:"foreignKey:FamilyID"`
}

// Price is the family's lowest per-person package price, used by catalog
// sorting and cards. 0 when the family has no packages yet.
func (f HostFamily) Price() float64 {
	min := 0.0
	for _, p := range f.Packages {
		if min == 0 || p.PricePerPerson < min {
			min = p.PricePerPerson
		}
	}
	return min
}

// HasPackage reports whether the family offers the given package type.
func (f HostFamily) HasPackage(t PackageType) bool {
	for _, p := range f.Packages {
		if p.Type == t {
			return true
		}
	}
	return false
}

// Package is one hospitality offering of a family: a simple reception or a
// full meal, priced per person.
type Package struct {
	ID             int64       `json:"id"`
	FamilyID       int64       `json:"family_id"`
	Type           PackageType `json:"type"`
	Name           string      `json:"name"`
	PricePerPerson float64     `json:"price_per_person"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}
