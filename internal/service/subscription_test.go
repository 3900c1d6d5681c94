package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/periodical-store/internal/model"
	"github.com/iliyamo/periodical-store/internal/repository"
)

func TestSubscriptionLifecycle(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	u := createUser(t, db, "reader@example.com", 0)
	other := createUser(t, db, "other@example.com", 0)
	addToCart(t, db, u.ID, createPub(t, db, "Daily", model.TypeNewspaper, "100"))

	checkout := NewCheckoutService(db, nil)
	checkout.Now = func() time.Time { return start }
	_, err := checkout.Checkout(ctx, u.ID, 0)
	require.NoError(t, err)

	svc := NewSubscriptionService(db)
	svc.Now = func() time.Time { return start.AddDate(0, 6, 1) }

	subs, err := svc.List(ctx, u.ID, "")
	require.NoError(t, err)
	require.Len(t, subs, 1)
	sub := subs[0]
	assert.Equal(t, model.SubscriptionActive, sub.Status)
	require.NotNil(t, sub.Publication)
	assert.Equal(t, "Daily", sub.Publication.Title)

	_, err = svc.Cancel(ctx, other.ID, sub.ID)
	assert.ErrorIs(t, err, repository.ErrForbidden)

	cancelled, err := svc.Cancel(ctx, u.ID, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SubscriptionCancelled, cancelled.Status)
	require.NotNil(t, cancelled.RefundAmount)
	// 2026-07-02 -> 2027-01-01 is 183 of 365 days.
	assert.Equal(t, "50.14", cancelled.RefundAmount.StringFixed(2))
	require.NotNil(t, cancelled.CancelledAt)

	_, err = svc.Cancel(ctx, u.ID, sub.ID)
	assert.ErrorIs(t, err, ErrSubscriptionNotActive)

	_, err = svc.Cancel(ctx, u.ID, 999)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	active, err := svc.List(ctx, u.ID, model.SubscriptionActive)
	require.NoError(t, err)
	assert.Empty(t, active)
	assert.NotNil(t, active)
}

func TestSubscriptionsExpireOnRead(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	u := createUser(t, db, "reader@example.com", 0)
	addToCart(t, db, u.ID, createPub(t, db, "Monthly", model.TypeMagazine, "12"))
	checkout := NewCheckoutService(db, nil)
	checkout.Now = func() time.Time { return start }
	_, err := checkout.Checkout(ctx, u.ID, 0)
	require.NoError(t, err)

	svc := NewSubscriptionService(db)
	svc.Now = func() time.Time { return start.AddDate(2, 0, 0) }

	subs, err := svc.List(ctx, u.ID, "")
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, model.SubscriptionExpired, subs[0].Status)

	_, err = svc.Cancel(ctx, u.ID, subs[0].ID)
	assert.ErrorIs(t, err, ErrSubscriptionNotActive)
}
