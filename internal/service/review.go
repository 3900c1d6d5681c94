package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/iliyamo/periodical-store/internal/model"
	"github.com/iliyamo/periodical-store/internal/pricing"
	"github.com/iliyamo/periodical-store/internal/repository"
)

type ReviewService struct {
	DB      *gorm.DB
	Reviews *repository.ReviewRepo
	Orders  *repository.OrderRepo
	Pubs    *repository.PublicationRepo
	Users   *repository.UserRepo
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{
		DB:      db,
		Reviews: repository.NewReviewRepo(db),
		Orders:  repository.NewOrderRepo(db),
		Pubs:    repository.NewPublicationRepo(db),
		Users:   repository.NewUserRepo(db),
	}
}

// Create stores a pending review.  The author must hold a completed order
// containing the publication and must not have reviewed it before.
func (s *ReviewService) Create(ctx context.Context, userID, publicationID uint64, rating int, comment string) (model.Review, error) {
	if rating < 1 || rating > 5 {
		return model.Review{}, ErrInvalidRating
	}
	if _, err := s.Pubs.GetByID(ctx, publicationID); err != nil {
		return model.Review{}, err
	}
	bought, err := s.Orders.HasPurchased(ctx, userID, publicationID)
	if err != nil {
		return model.Review{}, err
	}
	if !bought {
		return model.Review{}, ErrNotPurchased
	}
	exists, err := s.Reviews.Exists(ctx, userID, publicationID)
	if err != nil {
		return model.Review{}, err
	}
	if exists {
		return model.Review{}, ErrDuplicateReview
	}

	rv := model.Review{
		UserID:        userID,
		PublicationID: publicationID,
		Rating:        rating,
		Comment:       strings.TrimSpace(comment),
		Status:        model.ReviewPending,
	}
	if err := s.Reviews.Create(ctx, &rv); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return model.Review{}, ErrDuplicateReview
		}
		return model.Review{}, err
	}
	return rv, nil
}

// Moderate moves a review to approved or rejected.  Whenever the review
// enters or leaves the approved state the publication's rating and count are
// recomputed in the same transaction.  The first approval credits the
// author with pricing.ReviewApprovalPoints.
func (s *ReviewService) Moderate(ctx context.Context, id uint64, status string) (model.Review, error) {
	if status != model.ReviewApproved && status != model.ReviewRejected {
		return model.Review{}, ErrInvalidStatus
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rv, err := s.Reviews.LockByID(ctx, tx, id)
		if err != nil {
			return err
		}

		var award int64
		if status == model.ReviewApproved && rv.PointsAwarded == 0 {
			award = pricing.ReviewApprovalPoints
		}
		if err := s.Reviews.SetStatus(ctx, tx, id, status, award); err != nil {
			return err
		}
		if award > 0 {
			if err := s.Users.AddPoints(ctx, tx, rv.UserID, award, award); err != nil {
				return err
			}
		}
		if rv.Status == model.ReviewApproved || status == model.ReviewApproved {
			if _, err := s.Pubs.RecomputeRating(ctx, tx, rv.PublicationID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return model.Review{}, err
	}
	return s.Reviews.GetByID(ctx, id)
}

// Delete removes a review.  Deleting an approved review recomputes the
// publication's rating over the remaining approved set.
func (s *ReviewService) Delete(ctx context.Context, id uint64) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rv, err := s.Reviews.LockByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := s.Reviews.Delete(ctx, tx, id); err != nil {
			return err
		}
		if rv.Status == model.ReviewApproved {
			if _, err := s.Pubs.RecomputeRating(ctx, tx, rv.PublicationID); err != nil {
				return err
			}
		}
		return nil
	})
}
