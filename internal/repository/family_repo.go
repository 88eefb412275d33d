package repository

import (
	"context"

	"karam/internal/domain"

	"gorm.io/gorm"
)

type FamilyRepository struct {
	db *gorm.DB
}

func NewFamilyRepository(db *gorm.DB) *FamilyRepository {
	return &FamilyRepository{db: db}
}

func (r *FamilyRepository) List(ctx context.Context) ([]domain.HostFamily, error) {
	var families []domain.HostFamily
	err := r.db.WithContext(ctx).
		Preload("Packages").
		Where("deleted_at IS NULL").
		Order("id").
		Find(&families).Error
	if err != nil {
		return nil, err
	}
	return families, nil
}

func (r *FamilyRepository) GetByID(ctx context.Context, id int64) (*domain.HostFamily, error) {
	var f domain.HostFamily
	err := r.db.WithContext(ctx).
		Preload("Packages").
		Where("deleted_at IS NULL").
		First(&f, id).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// GetPackage resolves one package of a family by type.
func (r *FamilyRepository) GetPackage(ctx context.Context, familyID int64, t domain.PackageType) (*domain.Package, error) {
	var p domain.Package
	err := r.db.WithContext(ctx).
		Where("family_id = ? AND type = ?", familyID, t).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *FamilyRepository) Create(ctx context.Context, f *domain.HostFamily) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *FamilyRepository) GetOwnerID(ctx context.Context, familyID int64) (int64, error) {
	var f domain.HostFamily
	err := r.db.WithContext(ctx).Select("owner_id").First(&f, familyID).Error
	if err != nil {
		return 0, err
	}
	return f.OwnerID, nil
}
