package model

import "time"

// Role names stored in users.role and carried in the JWT "role" claim.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an application user record as stored in the `users`
// table.  Points is the spendable loyalty balance; PointsEarned is the
// lifetime total and only ever grows.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Email        – unique, lower-cased email address.
//	Name         – display name.
//	PasswordHash – bcrypt hashed password, never serialised.
//	Role         – user or admin.
//	Points       – current loyalty balance (1 point redeems $1).
//	PointsEarned – lifetime points earned.
type User struct {
	ID           uint64    `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:16;not null;default:user" json:"role"`
	Points       int64     `gorm:"not null;default:0" json:"points"`
	PointsEarned int64     `gorm:"not null;default:0" json:"pointsEarned"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// UserSummary is the public projection of a user embedded in orders and
// reviews.
type UserSummary struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Summary returns the public projection of u.
func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each
// refresh token belongs to a user and contains metadata for expiry
// and revocation.  The plain token is not stored; only its SHA-256 hash.
type RefreshToken struct {
	ID        uint64     `gorm:"primaryKey"`
	UserID    uint64     `gorm:"index;not null"`
	TokenHash string     `gorm:"size:64;uniqueIndex;not null"`
	ExpiresAt time.Time  `gorm:"not null"`
	RevokedAt *time.Time
	CreatedAt time.Time
}
