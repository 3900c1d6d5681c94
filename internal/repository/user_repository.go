package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/iliyamo/periodical-store/internal/model"
	"github.com/iliyamo/periodical-store/internal/utils"
)

type UserRepo struct{ DB *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{DB: db} }

// UserWithCounts is a user row plus the number of orders and reviews the
// user owns, as shown on the admin users page.
type UserWithCounts struct {
	model.User
	OrderCount  int64 `json:"orderCount"`
	ReviewCount int64 `json:"reviewCount"`
}

// Create hashes password and inserts the user.  Email is normalised to
// lower case.
func (r *UserRepo) Create(ctx context.Context, email, name, password, role string, cost int) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return model.User{}, err
	}
	u := model.User{Email: email, Name: strings.TrimSpace(name), PasswordHash: hash, Role: role}
	if err := r.DB.WithContext(ctx).Create(&u).Error; err != nil {
		if isDuplicate(err) {
			return model.User{}, ErrEmailExists
		}
		return model.User{}, err
	}
	return u, nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&u).Error
	return u, mapErr(err)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.WithContext(ctx).First(&u, id).Error
	return u, mapErr(err)
}

// LockByID reads the user inside tx, holding a row lock where supported so
// that concurrent checkouts see a consistent points balance.
func (r *UserRepo) LockByID(ctx context.Context, tx *gorm.DB, id uint64) (model.User, error) {
	var u model.User
	err := forUpdate(tx.WithContext(ctx)).First(&u, id).Error
	return u, mapErr(err)
}

// AddPoints applies delta to the spendable balance and earned to the
// lifetime total in a single UPDATE.
func (r *UserRepo) AddPoints(ctx context.Context, tx *gorm.DB, id uint64, delta, earned int64) error {
	res := conn(r.DB, tx).WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"points":        gorm.Expr("points + ?", delta),
			"points_earned": gorm.Expr("points_earned + ?", earned),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListWithCounts returns every user, newest first, with order and review
// counts.
func (r *UserRepo) ListWithCounts(ctx context.Context) ([]UserWithCounts, error) {
	var users []model.User
	if err := r.DB.WithContext(ctx).Order("created_at DESC, id DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	orders, err := countBy(ctx, r.DB, &model.Order{})
	if err != nil {
		return nil, err
	}
	reviews, err := countBy(ctx, r.DB, &model.Review{})
	if err != nil {
		return nil, err
	}
	out := make([]UserWithCounts, 0, len(users))
	for _, u := range users {
		out = append(out, UserWithCounts{User: u, OrderCount: orders[u.ID], ReviewCount: reviews[u.ID]})
	}
	return out, nil
}

// Count returns the number of users.
func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.User{}).Count(&n).Error
	return n, err
}

// countBy groups rows of m by user_id.
func countBy(ctx context.Context, db *gorm.DB, m interface{}) (map[uint64]int64, error) {
	var rows []struct {
		UserID uint64
		N      int64
	}
	err := db.WithContext(ctx).Model(m).Select("user_id, COUNT(*) AS n").Group("user_id").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uint64]int64, len(rows))
	for _, row := range rows {
		out[row.UserID] = row.N
	}
	return out, nil
}
