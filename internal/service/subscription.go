package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/iliyamo/periodical-store/internal/model"
	"github.com/iliyamo/periodical-store/internal/pricing"
	"github.com/iliyamo/periodical-store/internal/repository"
)

type SubscriptionService struct {
	DB   *gorm.DB
	Subs *repository.SubscriptionRepo
	Now  func() time.Time
}

func NewSubscriptionService(db *gorm.DB) *SubscriptionService {
	return &SubscriptionService{
		DB:   db,
		Subs: repository.NewSubscriptionRepo(db),
		Now:  func() time.Time { return time.Now().UTC() },
	}
}

// List returns the user's subscriptions after expiring those past their end
// date.  An empty status returns all of them.
func (s *SubscriptionService) List(ctx context.Context, userID uint64, status string) ([]model.Subscription, error) {
	if _, err := s.Subs.ExpireDue(ctx, userID, s.Now()); err != nil {
		return nil, err
	}
	subs, err := s.Subs.ListByUser(ctx, userID, status)
	if err != nil {
		return nil, err
	}
	if subs == nil {
		subs = []model.Subscription{}
	}
	return subs, nil
}

// Cancel ends an active subscription owned by userID and records a refund
// pro-rated over the days left in the term.
func (s *SubscriptionService) Cancel(ctx context.Context, userID, id uint64) (model.Subscription, error) {
	now := s.Now()
	var sub model.Subscription

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		sub, err = s.Subs.LockByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if sub.UserID != userID {
			return repository.ErrForbidden
		}
		if sub.Status != model.SubscriptionActive || !now.Before(sub.EndDate) {
			return ErrSubscriptionNotActive
		}

		refund := pricing.ProratedRefund(sub.Price, days(sub.EndDate.Sub(sub.StartDate)), days(sub.EndDate.Sub(now)))
		if err := s.Subs.MarkCancelled(ctx, tx, id, now, refund); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return ErrSubscriptionNotActive
			}
			return err
		}
		sub.Status = model.SubscriptionCancelled
		sub.CancelledAt = &now
		sub.RefundAmount = &refund
		return nil
	})
	if err != nil {
		return model.Subscription{}, err
	}
	return sub, nil
}

// days counts whole days in d.
func days(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	return int64(d / (24 * time.Hour))
}
