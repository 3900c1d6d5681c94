package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/periodical-store/internal/model"
	"github.com/iliyamo/periodical-store/internal/repository"
)

func TestCartAddIsIdempotent(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	u := createUser(t, db, "cart@example.com", 0)
	mag := createPub(t, db, "Monthly", model.TypeMagazine, "100")
	paper := createPub(t, db, "Daily", model.TypeNewspaper, "20")
	svc := NewCartService(repository.NewCartRepo(db), repository.NewPublicationRepo(db))

	_, err := svc.Add(ctx, u.ID, mag.ID)
	require.NoError(t, err)
	view, err := svc.Add(ctx, u.ID, mag.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 1, view.Items[0].Quantity)

	view, err = svc.Add(ctx, u.ID, paper.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, view.ItemCount)
	assert.Equal(t, "128.25", view.Total.StringFixed(2))
	assert.Equal(t, int64(128), view.PointsEarned)

	view, err = svc.Remove(ctx, u.ID, mag.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "Daily", view.Items[0].Publication.Title)
	assert.True(t, view.Tax.IsZero())

	view, err = svc.Clear(ctx, u.ID)
	require.NoError(t, err)
	assert.NotNil(t, view.Items)
	assert.Empty(t, view.Items)
	assert.True(t, view.Total.IsZero())
}

func TestCartAddUnknownPublication(t *testing.T) {
	db := setupDB(t)
	u := createUser(t, db, "cart@example.com", 0)
	svc := NewCartService(repository.NewCartRepo(db), repository.NewPublicationRepo(db))

	_, err := svc.Add(context.Background(), u.ID, 404)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCartsArePerUser(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	a := createUser(t, db, "a@example.com", 0)
	b := createUser(t, db, "b@example.com", 0)
	addToCart(t, db, a.ID, createPub(t, db, "Daily", model.TypeNewspaper, "20"))
	svc := NewCartService(repository.NewCartRepo(db), repository.NewPublicationRepo(db))

	view, err := svc.View(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}
