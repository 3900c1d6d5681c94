package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/iliyamo/periodical-store/internal/model"
	"github.com/iliyamo/periodical-store/internal/pricing"
	"github.com/iliyamo/periodical-store/internal/repository"
)

func buy(t *testing.T, db *gorm.DB, u model.User, p model.Publication) {
	t.Helper()
	addToCart(t, db, u.ID, p)
	_, err := NewCheckoutService(db, nil).Checkout(context.Background(), u.ID, 0)
	require.NoError(t, err)
}

func reloadPub(t *testing.T, db *gorm.DB, id uint64) model.Publication {
	t.Helper()
	var p model.Publication
	require.NoError(t, db.First(&p, id).Error)
	return p
}

func TestCreateReviewRequiresPurchase(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	buyer := createUser(t, db, "buyer@example.com", 0)
	other := createUser(t, db, "other@example.com", 0)
	pub := createPub(t, db, "Monthly", model.TypeMagazine, "10")
	buy(t, db, buyer, pub)
	svc := NewReviewService(db)

	_, err := svc.Create(ctx, other.ID, pub.ID, 5, "great")
	assert.ErrorIs(t, err, ErrNotPurchased)

	rv, err := svc.Create(ctx, buyer.ID, pub.ID, 5, "  great  ")
	require.NoError(t, err)
	assert.Equal(t, model.ReviewPending, rv.Status)
	assert.Equal(t, "great", rv.Comment)
	assert.NotZero(t, rv.ID)

	_, err = svc.Create(ctx, buyer.ID, pub.ID, 4, "again")
	assert.ErrorIs(t, err, ErrDuplicateReview)
}

func TestCreateReviewValidation(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	u := createUser(t, db, "u@example.com", 0)
	svc := NewReviewService(db)

	_, err := svc.Create(ctx, u.ID, 1, 0, "")
	assert.ErrorIs(t, err, ErrInvalidRating)
	_, err = svc.Create(ctx, u.ID, 1, 6, "")
	assert.ErrorIs(t, err, ErrInvalidRating)
	_, err = svc.Create(ctx, u.ID, 999, 3, "")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestModerateRecomputesRating(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	pub := createPub(t, db, "Monthly", model.TypeMagazine, "10")
	a := createUser(t, db, "a@example.com", 0)
	b := createUser(t, db, "b@example.com", 0)
	buy(t, db, a, pub)
	buy(t, db, b, pub)
	svc := NewReviewService(db)

	ra, err := svc.Create(ctx, a.ID, pub.ID, 4, "good")
	require.NoError(t, err)
	rb, err := svc.Create(ctx, b.ID, pub.ID, 5, "great")
	require.NoError(t, err)

	pointsBefore := reloadUser(t, db, a.ID).Points

	got, err := svc.Moderate(ctx, ra.ID, model.ReviewApproved)
	require.NoError(t, err)
	assert.Equal(t, model.ReviewApproved, got.Status)
	assert.Equal(t, pricing.ReviewApprovalPoints, got.PointsAwarded)
	p := reloadPub(t, db, pub.ID)
	assert.InDelta(t, 4.0, p.Rating, 1e-9)
	assert.Equal(t, 1, p.ReviewCount)

	_, err = svc.Moderate(ctx, rb.ID, model.ReviewApproved)
	require.NoError(t, err)
	p = reloadPub(t, db, pub.ID)
	assert.InDelta(t, 4.5, p.Rating, 1e-9)
	assert.Equal(t, 2, p.ReviewCount)

	// A second approval does not award again.
	_, err = svc.Moderate(ctx, ra.ID, model.ReviewApproved)
	require.NoError(t, err)
	assert.Equal(t, pointsBefore+pricing.ReviewApprovalPoints, reloadUser(t, db, a.ID).Points)

	// Rejecting an approved review drops it from the aggregate.
	_, err = svc.Moderate(ctx, ra.ID, model.ReviewRejected)
	require.NoError(t, err)
	p = reloadPub(t, db, pub.ID)
	assert.InDelta(t, 5.0, p.Rating, 1e-9)
	assert.Equal(t, 1, p.ReviewCount)

	// Deleting the last approved review resets the aggregate.
	require.NoError(t, svc.Delete(ctx, rb.ID))
	p = reloadPub(t, db, pub.ID)
	assert.Zero(t, p.Rating)
	assert.Zero(t, p.ReviewCount)
}

func TestRejectPendingLeavesRatingAlone(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	pub := createPub(t, db, "Monthly", model.TypeMagazine, "10")
	require.NoError(t, db.Model(&pub).Updates(map[string]interface{}{"rating": 3.5, "review_count": 7}).Error)
	u := createUser(t, db, "u@example.com", 0)
	buy(t, db, u, pub)
	svc := NewReviewService(db)

	rv, err := svc.Create(ctx, u.ID, pub.ID, 1, "meh")
	require.NoError(t, err)
	got, err := svc.Moderate(ctx, rv.ID, model.ReviewRejected)
	require.NoError(t, err)
	assert.Zero(t, got.PointsAwarded)

	p := reloadPub(t, db, pub.ID)
	assert.InDelta(t, 3.5, p.Rating, 1e-9)
	assert.Equal(t, 7, p.ReviewCount)
}

func TestModerateAndDeleteErrors(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	svc := NewReviewService(db)

	_, err := svc.Moderate(ctx, 1, model.ReviewPending)
	assert.ErrorIs(t, err, ErrInvalidStatus)
	_, err = svc.Moderate(ctx, 1, "published")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	_, err = svc.Moderate(ctx, 42, model.ReviewApproved)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, 42), repository.ErrNotFound)
}
