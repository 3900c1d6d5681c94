package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/iliyamo/periodical-store/internal/model"
)

type OrderRepo struct{ DB *gorm.DB }

func NewOrderRepo(db *gorm.DB) *OrderRepo { return &OrderRepo{DB: db} }

// Create inserts the order row only; items are written by CreateItems.
func (r *OrderRepo) Create(ctx context.Context, tx *gorm.DB, o *model.Order) error {
	return conn(r.DB, tx).WithContext(ctx).Omit(clause.Associations).Create(o).Error
}

// CreateItems inserts order lines.
func (r *OrderRepo) CreateItems(ctx context.Context, tx *gorm.DB, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return conn(r.DB, tx).WithContext(ctx).Omit(clause.Associations).Create(&items).Error
}

// GetByID returns an order with its items and their publications.
func (r *OrderRepo) GetByID(ctx context.Context, id uint64) (model.Order, error) {
	var o model.Order
	err := r.DB.WithContext(ctx).
		Preload("Items", orderItems).
		Preload("Items.Publication").
		Preload("User").
		First(&o, id).Error
	return o, mapErr(err)
}

// ListByUser returns the user's orders newest first.
func (r *OrderRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Order, error) {
	var orders []model.Order
	err := r.DB.WithContext(ctx).
		Preload("Items", orderItems).
		Preload("Items.Publication").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	return orders, err
}

// ListAll returns every order newest first, optionally filtered by status,
// with the buying user preloaded.
func (r *OrderRepo) ListAll(ctx context.Context, status string) ([]model.Order, error) {
	q := r.DB.WithContext(ctx).
		Preload("Items", orderItems).
		Preload("Items.Publication").
		Preload("User")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var orders []model.Order
	err := q.Order("created_at DESC, id DESC").Find(&orders).Error
	return orders, err
}

// HasPurchased reports whether userID holds a completed order containing
// publicationID.
func (r *OrderRepo) HasPurchased(ctx context.Context, userID, publicationID uint64) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND orders.status = ? AND order_items.publication_id = ?",
			userID, model.OrderStatusCompleted, publicationID).
		Count(&n).Error
	return n > 0, err
}

// Count returns the number of orders.
func (r *OrderRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Order{}).Count(&n).Error
	return n, err
}

// Revenue is the sum of all order totals.
func (r *OrderRepo) Revenue(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.DB.WithContext(ctx).Model(&model.Order{}).
		Select("SUM(total)").
		Row().Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

func orderItems(db *gorm.DB) *gorm.DB { return db.Order("order_items.id ASC") }
