package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/iliyamo/periodical-store/internal/config"
	"github.com/iliyamo/periodical-store/internal/database"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(config.DB{
		Driver: database.DriverSQLite,
		Name:   "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestRevokeByHashWinsOnce(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	tokens := NewTokenRepo(db)
	require.NoError(t, tokens.StoreRefresh(ctx, 1, "h1", time.Now().Add(time.Hour)))

	// Two rotations that both validated before either revoked.
	_, err := tokens.ValidateRefresh(ctx, "h1")
	require.NoError(t, err)
	_, err = tokens.ValidateRefresh(ctx, "h1")
	require.NoError(t, err)

	assert.NoError(t, tokens.RevokeByHash(ctx, "h1"))
	assert.ErrorIs(t, tokens.RevokeByHash(ctx, "h1"), ErrNotFound)

	_, err = tokens.ValidateRefresh(ctx, "h1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRevokeByHashRejectsExpiredAndUnknown(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	tokens := NewTokenRepo(db)
	require.NoError(t, tokens.StoreRefresh(ctx, 1, "old", time.Now().Add(-time.Minute)))

	assert.ErrorIs(t, tokens.RevokeByHash(ctx, "old"), ErrNotFound)
	assert.ErrorIs(t, tokens.RevokeByHash(ctx, "missing"), ErrNotFound)
}
