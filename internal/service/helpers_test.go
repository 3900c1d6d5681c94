package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/iliyamo/periodical-store/internal/config"
	"github.com/iliyamo/periodical-store/internal/database"
	"github.com/iliyamo/periodical-store/internal/model"
	"github.com/iliyamo/periodical-store/internal/queue"
	"github.com/iliyamo/periodical-store/internal/repository"
)

func setupDB(t *testing.T) *gorm.DB {
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

func createUser(t *testing.T, db *gorm.DB, email string, points int64) model.User {
	t.Helper()
	u := model.User{Email: email, Name: email, PasswordHash: "x", Role: model.RoleUser, Points: points}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func createPub(t *testing.T, db *gorm.DB, title string, typ model.PublicationType, price string) model.Publication {
	t.Helper()
	p := model.Publication{Title: title, Type: typ, Price: decimal.RequireFromString(price), Category: "News"}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func addToCart(t *testing.T, db *gorm.DB, userID uint64, pubs ...model.Publication) {
	t.Helper()
	svc := NewCartService(repository.NewCartRepo(db), repository.NewPublicationRepo(db))
	for _, p := range pubs {
		_, err := svc.Add(context.Background(), userID, p.ID)
		require.NoError(t, err)
	}
}

func reloadUser(t *testing.T, db *gorm.DB, id uint64) model.User {
	t.Helper()
	var u model.User
	require.NoError(t, db.First(&u, id).Error)
	return u
}

func count(t *testing.T, db *gorm.DB, m interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(m).Count(&n).Error)
	return n
}

// failOn makes every INSERT into table fail.
func failOn(t *testing.T, db *gorm.DB, table string) {
	t.Helper()
	err := db.Callback().Create().Before("gorm:create").Register("test:fail_"+table, func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			_ = tx.AddError(errors.New("forced failure on " + table))
		}
	})
	require.NoError(t, err)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.OrderCompletedEvent
	err    error
}

func (p *recordingPublisher) PublishOrderCompleted(_ context.Context, ev queue.OrderCompletedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func decimalInt(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// addToCartDuring inserts pub into the user's cart, on the same transaction,
// right after the first INSERT into table.
func addToCartDuring(t *testing.T, db *gorm.DB, table string, userID uint64, pub model.Publication) {
	t.Helper()
	var once sync.Once
	err := db.Callback().Create().After("gorm:create").Register("test:add_during_"+table, func(tx *gorm.DB) {
		if tx.Statement.Table != table || tx.Error != nil {
			return
		}
		once.Do(func() {
			item := model.CartItem{UserID: userID, PublicationID: pub.ID, Quantity: 1}
			_ = tx.Session(&gorm.Session{NewDB: true}).Omit("Publication").Create(&item).Error
		})
	})
	require.NoError(t, err)
}
