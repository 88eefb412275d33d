package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

type PaymentState string

const (
	PaymentUnpaid   PaymentState = "unpaid"
	PaymentPaid     PaymentState = "paid"
	PaymentRefunded PaymentState = "refunded"
)

// Booking is a committed group booking. GuestsData carries the serialized
// roster exactly as collected at commit time.
type Booking struct {
	ID                 int64         `json:"id"`
	FamilyID           int64         `json:"family_id" validate:"required"`
	UserID             int64         `json:"user_id"`
	PackageType        PackageType   `json:"package_type" validate:"required"`
	GuestCount         int           `json:"guest_count" validate:"required,gt=0"`
	TotalPrice         float64       `json:"total_price" validate:"gte=0"`
	DiscountPercentage float64       `json:"discount_percentage"`
	Notes              string        `json:"notes,omitempty" gorm:"type:text"`
	Status             BookingStatus `json:"status"`
	PaymentStatus      PaymentState  `json:"payment_status"`
	GuestsData         string        `json:"guests_data,omitempty" gorm:"type:text"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
	CancelledAt        *time.Time    `json:"cancelled_at,omitempty"`

	Family *HostFamily `json:"family,omitempty" gorm:"foreignKey:FamilyID"`
}
