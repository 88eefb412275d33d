package domain

import "time"

type MoyasarPaymentStatus string

const (
	PaymentStatusCreated MoyasarPaymentStatus = "created"
	PaymentStatusPending MoyasarPaymentStatus = "pending"
	PaymentStatusPaid    MoyasarPaymentStatus = "paid"
	PaymentStatusFailed  MoyasarPaymentStatus = "failed"
)

// MoyasarPayment is one payment attempt against the Moyasar hosted form.
// InvID is our invoice reference; GatewayID is assigned by Moyasar and
// arrives with the callback.
type MoyasarPayment struct {
	ID            int64                `gorm:"primaryKey" json:"id"`
	InvID         int64                `gorm:"uniqueIndex;not null" json:"inv_id"`
	GatewayID     string               `gorm:"type:varchar(64);index" json:"gateway_id,omitempty"`
	UserID        int64                `gorm:"index;not null" json:"user_id"`
	AmountHalalas int64                `gorm:"not null" json:"amount_halalas"`
	Currency      string               `gorm:"type:varchar(8);not null" json:"currency"`
	Description   string               `gorm:"type:text" json:"description"`
	Status        MoyasarPaymentStatus `gorm:"type:varchar(20);default:'created';index" json:"status"`
	CallbackURL   string               `gorm:"type:text" json:"callback_url"`
	Metadata      string               `gorm:"type:text" json:"metadata"`
	BookingIDs    string               `gorm:"type:text" json:"booking_ids"`
	SourceType    string               `gorm:"type:varchar(32)" json:"source_type,omitempty"`
	RawCallback   string               `gorm:"type:text" json:"-"`
	FailureReason string               `gorm:"type:text" json:"failure_reason,omitempty"`
	PaidAt        *time.Time           `json:"paid_at,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

func (MoyasarPayment) TableName() string { return "moyasar_payments" }
