package domain

import "time"

type NotificationType string

const (
	NotifBookingCreated NotificationType = "booking_created"
	NotifBookingPaid    NotificationType = "booking_paid"
)

type Notification struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"user_id" gorm:"index;not null"`
	Type      NotificationType `json:"type" gorm:"type:varchar(32)"`
	Title     string           `json:"title"`
	Body      string           `json:"body" gorm:"type:text"`
	BookingID *int64           `json:"booking_id,omitempty"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}
