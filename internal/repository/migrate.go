package repository

import (
	"gorm.io/gorm"

	"karam/internal/domain"
)

// AutoMigrate creates or updates every table the repositories touch.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&domain.HostFamily{},
		&domain.Package{},
		&domain.Product{},
		&bookingModel{},
		&cartModel{},
		&domain.DiscountCode{},
		&domain.MoyasarPayment{},
		&domain.Notification{},
	)
}
