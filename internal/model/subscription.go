package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Subscription states.
const (
	SubscriptionActive    = "active"
	SubscriptionCancelled = "cancelled"
	SubscriptionExpired   = "expired"
)

// Subscription is a user's time-bounded entitlement to a publication,
// created from an order line at checkout.  Price is the amount paid for the
// term and is the base of the pro-rated refund on cancellation.
type Subscription struct {
	ID            uint64           `gorm:"primaryKey" json:"id"`
	UserID        uint64           `gorm:"index;not null" json:"userId"`
	PublicationID uint64           `gorm:"index;not null" json:"publicationId"`
	Publication   *Publication     `json:"-"`
	OrderNumber   string           `gorm:"size:64;index;not null" json:"orderNumber"`
	StartDate     time.Time        `gorm:"not null" json:"startDate"`
	EndDate       time.Time        `gorm:"not null" json:"endDate"`
	Status        string           `gorm:"size:16;index;not null" json:"status"`
	Price         decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"price"`
	RefundAmount  *decimal.Decimal `gorm:"type:decimal(10,2)" json:"refundAmount,omitempty"`
	CancelledAt   *time.Time       `json:"cancelledAt,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// SubscriptionView is the client-facing shape returned at login and in
// subscription listings.
type SubscriptionView struct {
	ID               uint64           `json:"id"`
	PublicationID    uint64           `json:"publicationId"`
	PublicationTitle string           `json:"publicationTitle"`
	Type             PublicationType  `json:"type"`
	StartDate        string           `json:"startDate"`
	EndDate          string           `json:"endDate"`
	Status           string           `json:"status"`
	OrderNumber      string           `json:"orderNumber"`
	Price            decimal.Decimal  `json:"price"`
	RefundAmount     *decimal.Decimal `json:"refundAmount,omitempty"`
}

// View flattens s with its preloaded publication.
func (s Subscription) View() SubscriptionView {
	v := SubscriptionView{
		ID:            s.ID,
		PublicationID: s.PublicationID,
		StartDate:     s.StartDate.UTC().Format(time.RFC3339),
		EndDate:       s.EndDate.UTC().Format(time.RFC3339),
		Status:        s.Status,
		OrderNumber:   s.OrderNumber,
		Price:         s.Price,
		RefundAmount:  s.RefundAmount,
	}
	if s.Publication != nil {
		v.PublicationTitle = s.Publication.Title
		v.Type = s.Publication.Type
	}
	return v
}
