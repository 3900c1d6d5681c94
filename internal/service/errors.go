// Package service holds the storefront's multi-step business operations:
// cart pricing, checkout, review moderation and subscription cancellation.
// Each mutating operation runs in one gorm transaction.
package service

import (
	"errors"

	"github.com/iliyamo/periodical-store/internal/pricing"
)

// Business-rule errors.  Handlers map each one to a status code and a
// user-facing message.
var (
	ErrEmptyCart             = errors.New("cart is empty")
	ErrInsufficientPoints    = pricing.ErrInsufficientPoints
	ErrPointsExceedTotal     = pricing.ErrPointsExceedTotal
	ErrInvalidPoints         = pricing.ErrInvalidPoints
	ErrInvalidRating         = errors.New("rating must be between 1 and 5")
	ErrNotPurchased          = errors.New("publication not purchased")
	ErrDuplicateReview       = errors.New("review already exists")
	ErrInvalidStatus         = errors.New("invalid review status")
	ErrSubscriptionNotActive = errors.New("subscription is not active")
)
