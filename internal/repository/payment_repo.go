package repository

import (
	"context"
	"errors"
	"time"

	"karam/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MoyasarPaymentRepository struct {
	db *gorm.DB
}

func NewMoyasarPaymentRepository(db *gorm.DB) *MoyasarPaymentRepository {
	return &MoyasarPaymentRepository{db: db}
}

func (r *MoyasarPaymentRepository) Create(ctx context.Context, p *domain.MoyasarPayment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *MoyasarPaymentRepository) GetByInvID(ctx context.Context, invID int64) (*domain.MoyasarPayment, error) {
	var p domain.MoyasarPayment
	if err := r.db.WithContext(ctx).Where("inv_id = ?", invID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *MoyasarPaymentRepository) MarkFailed(ctx context.Context, invID int64, rawBody, reason string) error {
	return r.db.WithContext(ctx).
		Model(&domain.MoyasarPayment{}).
		Where("inv_id = ?", invID).
		Updates(map[string]interface{}{
			"status":         domain.PaymentStatusFailed,
			"raw_callback":   rawBody,
			"failure_reason": reason,
		}).Error
}

// MarkPaidIdempotent records a paid callback exactly once. Returns false
// when the payment was already paid (duplicate callback).
func (r *MoyasarPaymentRepository) MarkPaidIdempotent(ctx context.Context, invID int64, gatewayID, sourceType, rawBody string, paidAt time.Time) (bool, error) {
	var changed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p domain.MoyasarPayment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("inv_id = ?", invID).First(&p).Error; err != nil {
			return err
		}
		if p.Status == domain.PaymentStatusPaid {
			changed = false
			return nil
		}
		res := tx.Model(&domain.MoyasarPayment{}).Where("inv_id = ?", invID).Updates(map[string]interface{}{
			"status":       domain.PaymentStatusPaid,
			"gateway_id":   gatewayID,
			"source_type":  sourceType,
			"raw_callback": rawBody,
			"paid_at":      paidAt,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.New("payment row not updated")
		}
		changed = true
		return nil
	})
	return changed, err
}
