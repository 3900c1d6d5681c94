package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/iliyamo/periodical-store/internal/model"
)

// TokenRepo persists/validates refresh tokens (single 'token_hash' column).
type TokenRepo struct{ DB *gorm.DB }

func NewTokenRepo(db *gorm.DB) *TokenRepo { return &TokenRepo{DB: db} }

// StoreRefresh inserts a refresh token hash row.
func (r *TokenRepo) StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error {
	return r.DB.WithContext(ctx).Create(&model.RefreshToken{
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: exp.UTC(),
	}).Error
}

// ValidateRefresh returns userID if a non-revoked, non-expired token exists.
func (r *TokenRepo) ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error) {
	var t model.RefreshToken
	if err := r.DB.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&t).Error; err != nil {
		return 0, mapErr(err)
	}
	if t.RevokedAt != nil {
		return 0, ErrNotFound
	}
	if time.Now().UTC().After(t.ExpiresAt) {
		return 0, ErrNotFound
	}
	return t.UserID, nil
}

// RevokeByHash revokes a live token.  It returns ErrNotFound when no
// unrevoked, unexpired token matches, so of two concurrent rotations of the
// same token exactly one succeeds.
func (r *TokenRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	now := time.Now().UTC()
	res := r.DB.WithContext(ctx).Model(&model.RefreshToken{}).
		Where("token_hash = ? AND revoked_at IS NULL AND expires_at > ?", tokenHash, now).
		Update("revoked_at", now)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// RevokeAllForUser revokes all user's active tokens.
func (r *TokenRepo) RevokeAllForUser(ctx context.Context, userID uint64) error {
	return r.DB.WithContext(ctx).Model(&model.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", time.Now().UTC()).Error
}
