package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/iliyamo/periodical-store/internal/model"
)

type ReviewRepo struct{ DB *gorm.DB }

func NewReviewRepo(db *gorm.DB) *ReviewRepo { return &ReviewRepo{DB: db} }

// Create inserts a review.  A second review by the same user for the same
// publication yields ErrDuplicate.
func (r *ReviewRepo) Create(ctx context.Context, rv *model.Review) error {
	err := r.DB.WithContext(ctx).Omit(clause.Associations).Create(rv).Error
	if isDuplicate(err) {
		return ErrDuplicate
	}
	return err
}

// Exists reports whether userID already reviewed publicationID.
func (r *ReviewRepo) Exists(ctx context.Context, userID, publicationID uint64) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Review{}).
		Where("user_id = ? AND publication_id = ?", userID, publicationID).
		Count(&n).Error
	return n > 0, err
}

// GetByID returns a review with its author and publication.
func (r *ReviewRepo) GetByID(ctx context.Context, id uint64) (model.Review, error) {
	var rv model.Review
	err := r.DB.WithContext(ctx).Preload("User").Preload("Publication").First(&rv, id).Error
	return rv, mapErr(err)
}

// LockByID reads a review inside tx with a row lock where supported.
func (r *ReviewRepo) LockByID(ctx context.Context, tx *gorm.DB, id uint64) (model.Review, error) {
	var rv model.Review
	err := forUpdate(tx.WithContext(ctx)).First(&rv, id).Error
	return rv, mapErr(err)
}

// SetStatus updates status and, when awarded > 0, records the points granted
// for the review.
func (r *ReviewRepo) SetStatus(ctx context.Context, tx *gorm.DB, id uint64, status string, awarded int64) error {
	updates := map[string]interface{}{"status": status}
	if awarded > 0 {
		updates["points_awarded"] = awarded
	}
	res := conn(r.DB, tx).WithContext(ctx).Model(&model.Review{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a review.
func (r *ReviewRepo) Delete(ctx context.Context, tx *gorm.DB, id uint64) error {
	res := conn(r.DB, tx).WithContext(ctx).Delete(&model.Review{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListForPublication returns reviews of one publication in the given status,
// newest first.
func (r *ReviewRepo) ListForPublication(ctx context.Context, publicationID uint64, status string) ([]model.Review, error) {
	var out []model.Review
	err := r.DB.WithContext(ctx).
		Preload("User").
		Where("publication_id = ? AND status = ?", publicationID, status).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

// ListByUser returns the user's own reviews, newest first.
func (r *ReviewRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Review, error) {
	var out []model.Review
	err := r.DB.WithContext(ctx).
		Preload("Publication").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

// ListAll returns every review, optionally filtered by status, newest first.
func (r *ReviewRepo) ListAll(ctx context.Context, status string) ([]model.Review, error) {
	q := r.DB.WithContext(ctx).Preload("User").Preload("Publication")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []model.Review
	err := q.Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}

// CountByStatus returns how many reviews are in status.
func (r *ReviewRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Review{}).Where("status = ?", status).Count(&n).Error
	return n, err
}
