package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/iliyamo/periodical-store/internal/model"
)

type SubscriptionRepo struct{ DB *gorm.DB }

func NewSubscriptionRepo(db *gorm.DB) *SubscriptionRepo { return &SubscriptionRepo{DB: db} }

// CreateBatch inserts subscriptions.
func (r *SubscriptionRepo) CreateBatch(ctx context.Context, tx *gorm.DB, subs []model.Subscription) error {
	if len(subs) == 0 {
		return nil
	}
	return conn(r.DB, tx).WithContext(ctx).Omit(clause.Associations).Create(&subs).Error
}

// ExpireDue flips the user's active subscriptions whose end date is before
// now to expired.
func (r *SubscriptionRepo) ExpireDue(ctx context.Context, userID uint64, now time.Time) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&model.Subscription{}).
		Where("user_id = ? AND status = ? AND end_date < ?", userID, model.SubscriptionActive, now.UTC()).
		Update("status", model.SubscriptionExpired)
	return res.RowsAffected, res.Error
}

// ListByUser returns the user's subscriptions, newest first.  An empty
// status returns all of them.
func (r *SubscriptionRepo) ListByUser(ctx context.Context, userID uint64, status string) ([]model.Subscription, error) {
	q := r.DB.WithContext(ctx).Preload("Publication").Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []model.Subscription
	err := q.Order("start_date DESC, id DESC").Find(&out).Error
	return out, err
}

// LockByID reads a subscription inside tx with a row lock where supported.
func (r *SubscriptionRepo) LockByID(ctx context.Context, tx *gorm.DB, id uint64) (model.Subscription, error) {
	var s model.Subscription
	err := forUpdate(tx.WithContext(ctx)).Preload("Publication").First(&s, id).Error
	return s, mapErr(err)
}

// MarkCancelled records cancellation time and refund on an active
// subscription.  It returns ErrConflict when the row is no longer active.
func (r *SubscriptionRepo) MarkCancelled(ctx context.Context, tx *gorm.DB, id uint64, at time.Time, refund decimal.Decimal) error {
	res := conn(r.DB, tx).WithContext(ctx).Model(&model.Subscription{}).
		Where("id = ? AND status = ?", id, model.SubscriptionActive).
		Updates(map[string]interface{}{
			"status":        model.SubscriptionCancelled,
			"cancelled_at":  at.UTC(),
			"refund_amount": refund,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}
