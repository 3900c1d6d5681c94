package model

import "time"

// Review moderation states.
const (
	ReviewPending  = "pending"
	ReviewApproved = "approved"
	ReviewRejected = "rejected"
)

// ValidReviewStatus reports whether s is one of the three moderation states.
func ValidReviewStatus(s string) bool {
	return s == ReviewPending || s == ReviewApproved || s == ReviewRejected
}

// Review is a rating and comment left by a buyer.  At most one review
// exists per (user, publication).  PointsAwarded records the approval bonus
// so that it is granted only once.
type Review struct {
	ID            uint64       `gorm:"primaryKey" json:"id"`
	UserID        uint64       `gorm:"not null;uniqueIndex:idx_review_user_publication" json:"userId"`
	PublicationID uint64       `gorm:"not null;uniqueIndex:idx_review_user_publication;index" json:"publicationId"`
	User          *User        `json:"-"`
	Publication   *Publication `json:"-"`
	Rating        int          `gorm:"not null" json:"rating"`
	Comment       string       `gorm:"type:text" json:"comment"`
	Status        string       `gorm:"size:16;index;not null" json:"status"`
	PointsAwarded int64        `gorm:"not null;default:0" json:"pointsAwarded"`
	CreatedAt     time.Time    `gorm:"index" json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}
