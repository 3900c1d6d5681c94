package service

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/iliyamo/periodical-store/internal/model"
	"github.com/iliyamo/periodical-store/internal/pricing"
	"github.com/iliyamo/periodical-store/internal/repository"
)

// SubscriptionTerm is the length of a subscription bought at checkout.
const SubscriptionTerm = 1 // years

type CheckoutService struct {
	DB        *gorm.DB
	Users     *repository.UserRepo
	Carts     *repository.CartRepo
	Orders    *repository.OrderRepo
	Subs      *repository.SubscriptionRepo
	Publisher Publisher
	Now       func() time.Time
}

func NewCheckoutService(db *gorm.DB, pub Publisher) *CheckoutService {
	if pub == nil {
		pub = NopPublisher{}
	}
	return &CheckoutService{
		DB:        db,
		Users:     repository.NewUserRepo(db),
		Carts:     repository.NewCartRepo(db),
		Orders:    repository.NewOrderRepo(db),
		Subs:      repository.NewSubscriptionRepo(db),
		Publisher: pub,
		Now:       func() time.Time { return time.Now().UTC() },
	}
}

// Checkout turns the user's cart into a completed order.
//
// In one transaction it locks the user row, prices the cart, redeems
// pointsToUse, writes the order with a price snapshot per line, opens one
// subscription per line, settles the points balance and empties the cart.
// Precondition failures (ErrEmptyCart, ErrInvalidPoints,
// ErrInsufficientPoints, ErrPointsExceedTotal) leave every row untouched,
// and any later failure rolls the whole transaction back.
//
// After commit an order.completed event is published; a publish failure is
// logged and does not fail the checkout.
func (s *CheckoutService) Checkout(ctx context.Context, userID uint64, pointsToUse int64) (model.Order, error) {
	now := s.Now()
	var order model.Order

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := s.Users.LockByID(ctx, tx, userID)
		if err != nil {
			return err
		}
		cart, err := s.Carts.List(ctx, tx, userID)
		if err != nil {
			return err
		}
		if len(cart) == 0 {
			return ErrEmptyCart
		}

		quote, err := pricing.ApplyPoints(pricing.Summarize(cartLines(cart)), pointsToUse, user.Points)
		if err != nil {
			return err
		}

		order = model.Order{
			OrderNumber:  NewOrderNumber(now),
			UserID:       userID,
			Subtotal:     quote.Subtotal,
			Tax:          quote.Tax,
			PointsUsed:   quote.PointsUsed,
			Total:        quote.Total,
			PointsEarned: quote.PointsEarned,
			Status:       model.OrderStatusCompleted,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.Orders.Create(ctx, tx, &order); err != nil {
			return err
		}

		items := make([]model.OrderItem, 0, len(cart))
		subs := make([]model.Subscription, 0, len(cart))
		for _, ci := range cart {
			qty := ci.Quantity
			if qty < 1 {
				qty = 1
			}
			items = append(items, model.OrderItem{
				OrderID:       order.ID,
				PublicationID: ci.PublicationID,
				Publication:   ci.Publication,
				Quantity:      qty,
				Price:         ci.Publication.Price,
			})
			subs = append(subs, model.Subscription{
				UserID:        userID,
				PublicationID: ci.PublicationID,
				OrderNumber:   order.OrderNumber,
				StartDate:     now,
				EndDate:       now.AddDate(SubscriptionTerm, 0, 0),
				Status:        model.SubscriptionActive,
				Price:         pricing.Line{UnitPrice: ci.Publication.Price, Quantity: qty}.Amount(),
			})
		}
		if err := s.Orders.CreateItems(ctx, tx, items); err != nil {
			return err
		}
		if err := s.Subs.CreateBatch(ctx, tx, subs); err != nil {
			return err
		}

		if err := s.Users.AddPoints(ctx, tx, userID, quote.PointsEarned-quote.PointsUsed, quote.PointsEarned); err != nil {
			return err
		}
		if err := s.Carts.DeleteItems(ctx, tx, userID, cartIDs(cart)); err != nil {
			return err
		}
		order.Items = items
		return nil
	})
	if err != nil {
		return model.Order{}, err
	}

	if perr := s.Publisher.PublishOrderCompleted(ctx, orderCompletedEvent(order)); perr != nil {
		log.Printf("checkout: publish %s failed: %v", order.OrderNumber, perr)
	}
	return order, nil
}

func cartIDs(items []model.CartItem) []uint64 {
	ids := make([]uint64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	return ids
}
