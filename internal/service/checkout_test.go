package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/periodical-store/internal/model"
)

var orderNumberRe = regexp.MustCompile(`^ORD-\d{13}-[0-9A-F]{8}$`)

func TestCheckoutMixedCart(t *testing.T) {
	db := setupDB(t)
	u := createUser(t, db, "buyer@example.com", 0)
	paper := createPub(t, db, "Daily", model.TypeNewspaper, "20")
	mag := createPub(t, db, "Monthly", model.TypeMagazine, "100")
	addToCart(t, db, u.ID, paper, mag)

	pub := &recordingPublisher{}
	svc := NewCheckoutService(db, pub)
	order, err := svc.Checkout(context.Background(), u.ID, 0)
	require.NoError(t, err)

	assert.Regexp(t, orderNumberRe, order.OrderNumber)
	assert.Equal(t, model.OrderStatusCompleted, order.Status)
	assert.Equal(t, "120.00", order.Subtotal.StringFixed(2))
	assert.Equal(t, "8.25", order.Tax.StringFixed(2))
	assert.Equal(t, "128.25", order.Total.StringFixed(2))
	assert.Equal(t, int64(128), order.PointsEarned)
	require.Len(t, order.Items, 2)

	after := reloadUser(t, db, u.ID)
	assert.Equal(t, int64(128), after.Points)
	assert.Equal(t, int64(128), after.PointsEarned)

	assert.Zero(t, count(t, db, &model.CartItem{}))
	assert.Equal(t, int64(2), count(t, db, &model.OrderItem{}))

	var subs []model.Subscription
	require.NoError(t, db.Where("user_id = ?", u.ID).Find(&subs).Error)
	require.Len(t, subs, 2)
	for _, s := range subs {
		assert.Equal(t, model.SubscriptionActive, s.Status)
		assert.Equal(t, order.OrderNumber, s.OrderNumber)
		assert.Equal(t, s.StartDate.AddDate(1, 0, 0).Unix(), s.EndDate.Unix())
	}

	require.Len(t, pub.events, 1)
	assert.Equal(t, order.OrderNumber, pub.events[0].OrderNumber)
	assert.Equal(t, "128.25", pub.events[0].Total)
	assert.Len(t, pub.events[0].Items, 2)
}

func TestCheckoutRedeemsPoints(t *testing.T) {
	db := setupDB(t)
	u := createUser(t, db, "saver@example.com", 50)
	mag := createPub(t, db, "Monthly", model.TypeMagazine, "100")
	addToCart(t, db, u.ID, mag)

	order, err := NewCheckoutService(db, nil).Checkout(context.Background(), u.ID, 8)
	require.NoError(t, err)

	assert.Equal(t, int64(8), order.PointsUsed)
	assert.Equal(t, "100.25", order.Total.StringFixed(2))
	assert.True(t, order.Total.Equal(order.Subtotal.Add(order.Tax).Sub(decimalInt(order.PointsUsed))))

	after := reloadUser(t, db, u.ID)
	assert.Equal(t, int64(50-8+100), after.Points)
	assert.Equal(t, int64(100), after.PointsEarned)
}

func TestCheckoutRejectionsMutateNothing(t *testing.T) {
	cases := []struct {
		name    string
		balance int64
		use     int64
		want    error
	}{
		{"insufficient points", 50, 100, ErrInsufficientPoints},
		{"points exceed total", 500, 81, ErrPointsExceedTotal},
		{"negative points", 500, -1, ErrInvalidPoints},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := setupDB(t)
			u := createUser(t, db, "u@example.com", tc.balance)
			paper := createPub(t, db, "Daily", model.TypeNewspaper, "80")
			addToCart(t, db, u.ID, paper)

			pub := &recordingPublisher{}
			_, err := NewCheckoutService(db, pub).Checkout(context.Background(), u.ID, tc.use)
			require.ErrorIs(t, err, tc.want)

			after := reloadUser(t, db, u.ID)
			assert.Equal(t, tc.balance, after.Points)
			assert.Zero(t, after.PointsEarned)
			assert.Equal(t, int64(1), count(t, db, &model.CartItem{}))
			assert.Zero(t, count(t, db, &model.Order{}))
			assert.Empty(t, pub.events)
		})
	}
}

func TestCheckoutKeepsLinesAddedMidway(t *testing.T) {
	db := setupDB(t)
	u := createUser(t, db, "late@example.com", 0)
	first := createPub(t, db, "Monthly", model.TypeMagazine, "10")
	late := createPub(t, db, "Daily", model.TypeNewspaper, "5")
	addToCart(t, db, u.ID, first)
	addToCartDuring(t, db, "orders", u.ID, late)

	order, err := NewCheckoutService(db, nil).Checkout(context.Background(), u.ID, 0)
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, first.ID, order.Items[0].PublicationID)

	var left []model.CartItem
	require.NoError(t, db.Where("user_id = ?", u.ID).Find(&left).Error)
	require.Len(t, left, 1)
	assert.Equal(t, late.ID, left[0].PublicationID)
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := setupDB(t)
	u := createUser(t, db, "empty@example.com", 10)

	_, err := NewCheckoutService(db, nil).Checkout(context.Background(), u.ID, 0)
	require.ErrorIs(t, err, ErrEmptyCart)
	assert.Zero(t, count(t, db, &model.Order{}))
}

func TestCheckoutIsAtomic(t *testing.T) {
	for _, table := range []string{"order_items", "subscriptions"} {
		t.Run(table, func(t *testing.T) {
			db := setupDB(t)
			u := createUser(t, db, "atomic@example.com", 20)
			mag := createPub(t, db, "Monthly", model.TypeMagazine, "100")
			addToCart(t, db, u.ID, mag)
			failOn(t, db, table)

			pub := &recordingPublisher{}
			_, err := NewCheckoutService(db, pub).Checkout(context.Background(), u.ID, 10)
			require.Error(t, err)

			after := reloadUser(t, db, u.ID)
			assert.Equal(t, int64(20), after.Points)
			assert.Zero(t, after.PointsEarned)
			assert.Zero(t, count(t, db, &model.Order{}))
			assert.Zero(t, count(t, db, &model.OrderItem{}))
			assert.Zero(t, count(t, db, &model.Subscription{}))
			assert.Equal(t, int64(1), count(t, db, &model.CartItem{}))
			assert.Empty(t, pub.events)
		})
	}
}

func TestCheckoutSurvivesPublishFailure(t *testing.T) {
	db := setupDB(t)
	u := createUser(t, db, "pub@example.com", 0)
	addToCart(t, db, u.ID, createPub(t, db, "Daily", model.TypeNewspaper, "10"))

	pub := &recordingPublisher{err: errors.New("broker down")}
	order, err := NewCheckoutService(db, pub).Checkout(context.Background(), u.ID, 0)
	require.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.Equal(t, int64(1), count(t, db, &model.Order{}))
}

func TestNewOrderNumber(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	a, b := NewOrderNumber(now), NewOrderNumber(now)
	assert.Regexp(t, orderNumberRe, a)
	assert.Contains(t, a, "ORD-1700000000123-")
	assert.NotEqual(t, a, b)
}
