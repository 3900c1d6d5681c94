package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses.  Orders are created completed; the column exists so that
// later flows (refunds, chargebacks) can move them.
const (
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// CartItem is one publication in a user's cart.  Rows are deleted at
// checkout or on explicit removal.
type CartItem struct {
	ID            uint64      `gorm:"primaryKey" json:"id"`
	UserID        uint64      `gorm:"not null;uniqueIndex:idx_cart_user_publication" json:"userId"`
	PublicationID uint64      `gorm:"not null;uniqueIndex:idx_cart_user_publication" json:"publicationId"`
	Quantity      int         `gorm:"not null;default:1" json:"quantity"`
	Publication   Publication `gorm:"constraint:OnDelete:CASCADE" json:"publication"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// Order records one checkout.  Money fields are fixed at creation:
// Total = Subtotal + Tax - PointsUsed.
type Order struct {
	ID           uint64          `gorm:"primaryKey" json:"id"`
	OrderNumber  string          `gorm:"size:64;uniqueIndex;not null" json:"orderNumber"`
	UserID       uint64          `gorm:"index;not null" json:"userId"`
	User         *User           `json:"-"`
	Subtotal     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	Tax          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"tax"`
	PointsUsed   int64           `gorm:"not null;default:0" json:"pointsUsed"`
	Total        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	PointsEarned int64           `gorm:"not null;default:0" json:"pointsEarned"`
	Status       string          `gorm:"size:16;index;not null" json:"status"`
	Items        []OrderItem     `json:"orderItems"`
	CreatedAt    time.Time       `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// OrderItem is a line of an order.  Price is the unit price copied from the
// publication at purchase time.
type OrderItem struct {
	ID            uint64          `gorm:"primaryKey" json:"id"`
	OrderID       uint64          `gorm:"index;not null" json:"orderId"`
	PublicationID uint64          `gorm:"index;not null" json:"publicationId"`
	Publication   Publication     `json:"publication"`
	Quantity      int             `gorm:"not null" json:"quantity"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt     time.Time       `json:"createdAt"`
}
