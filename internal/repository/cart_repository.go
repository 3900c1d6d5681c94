package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/iliyamo/periodical-store/internal/model"
)

// CartRepo stores the per-user cart.  Each (user, publication) pair appears
// at most once.
type CartRepo struct{ DB *gorm.DB }

func NewCartRepo(db *gorm.DB) *CartRepo { return &CartRepo{DB: db} }

// List returns the user's cart lines with their publications, oldest first.
func (r *CartRepo) List(ctx context.Context, tx *gorm.DB, userID uint64) ([]model.CartItem, error) {
	var items []model.CartItem
	err := conn(r.DB, tx).WithContext(ctx).
		Preload("Publication").
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&items).Error
	return items, err
}

// Add puts publicationID in the cart.  Adding a publication that is already
// present leaves the cart unchanged.
func (r *CartRepo) Add(ctx context.Context, userID, publicationID uint64) error {
	item := model.CartItem{UserID: userID, PublicationID: publicationID, Quantity: 1}
	return r.DB.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "publication_id"}},
			DoNothing: true,
		}).
		Create(&item).Error
}

// Remove deletes one line.  Removing an absent line is not an error.
func (r *CartRepo) Remove(ctx context.Context, userID, publicationID uint64) error {
	return r.DB.WithContext(ctx).
		Where("user_id = ? AND publication_id = ?", userID, publicationID).
		Delete(&model.CartItem{}).Error
}

// Clear empties the user's cart.
func (r *CartRepo) Clear(ctx context.Context, tx *gorm.DB, userID uint64) error {
	return conn(r.DB, tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartItem{}).Error
}

// DeleteItems removes the given lines of the user's cart.  Lines added after
// ids were read are left in place.
func (r *CartRepo) DeleteItems(ctx context.Context, tx *gorm.DB, userID uint64, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	return conn(r.DB, tx).WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Delete(&model.CartItem{}).Error
}
