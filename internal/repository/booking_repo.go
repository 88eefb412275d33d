package repository

import (
	"context"
	"time"

	"karam/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID                 int64      `gorm:"column:id;primaryKey"`
	FamilyID           int64      `gorm:"column:family_id"`
	UserID             int64      `gorm:"column:user_id"`
	PackageType        string     `gorm:"column:package_type"`
	GuestCount         int        `gorm:"column:guest_count"`
	TotalPrice         float64    `gorm:"column:total_price"`
	DiscountPercentage float64    `gorm:"column:discount_percentage"`
	Notes              *string    `gorm:"column:notes"`
	Status             string     `gorm:"column:status"`
	PaymentStatus      string     `gorm:"column:payment_status"`
	GuestsData         string     `gorm:"column:guests_data"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at"`
	CancelledAt        *time.Time `gorm:"column:cancelled_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var notes string
	if m.Notes != nil {
		notes = *m.Notes
	}

	return &domain.Booking{
		ID:                 m.ID,
		FamilyID:           m.FamilyID,
		UserID:             m.UserID,
		PackageType:        domain.PackageType(m.PackageType),
		GuestCount:         m.GuestCount,
		TotalPrice:         m.TotalPrice,
		DiscountPercentage: m.DiscountPercentage,
		Notes:              notes,
		Status:             domain.BookingStatus(m.Status),
		PaymentStatus:      domain.PaymentState(m.PaymentStatus),
		GuestsData:         m.GuestsData,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
		CancelledAt:        m.CancelledAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var notes *string
	if b.Notes != "" {
		v := b.Notes
		notes = &v
	}

	return bookingModel{
		ID:                 b.ID,
		FamilyID:           b.FamilyID,
		UserID:             b.UserID,
		PackageType:        string(b.PackageType),
		GuestCount:         b.GuestCount,
		TotalPrice:         b.TotalPrice,
		DiscountPercentage: b.DiscountPercentage,
		Notes:              notes,
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		GuestsData:         b.GuestsData,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
		CancelledAt:        b.CancelledAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	if tx := r.db.WithContext(ctx).First(&m, id); tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) GetByUserID(ctx context.Context, userID int64) ([]domain.Booking, error) {
	var rows []bookingModel
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// MarkPaid flips a set of bookings to confirmed/paid after a successful
// gateway callback.
func (r *BookingRepository) MarkPaid(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"status":         string(domain.BookingConfirmed),
			"payment_status": string(domain.PaymentPaid),
		}).Error
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", id).
		Update("status", string(status)).Error
}
