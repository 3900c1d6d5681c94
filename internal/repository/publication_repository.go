package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/iliyamo/periodical-store/internal/model"
)

type PublicationRepo struct{ DB *gorm.DB }

func NewPublicationRepo(db *gorm.DB) *PublicationRepo { return &PublicationRepo{DB: db} }

// List returns the whole catalogue, featured first, then by rating.
func (r *PublicationRepo) List(ctx context.Context) ([]model.Publication, error) {
	var pubs []model.Publication
	err := r.DB.WithContext(ctx).Order("featured DESC, rating DESC, id ASC").Find(&pubs).Error
	return pubs, err
}

// GetByID fetches one publication.
func (r *PublicationRepo) GetByID(ctx context.Context, id uint64) (model.Publication, error) {
	var p model.Publication
	err := r.DB.WithContext(ctx).First(&p, id).Error
	return p, mapErr(err)
}

// Create inserts p.
func (r *PublicationRepo) Create(ctx context.Context, p *model.Publication) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

// RecomputeRating sets rating and review_count of the publication from its
// approved reviews.  With no approved review left both are reset to zero.
// The publication row is locked first so concurrent moderation of reviews
// for the same publication is serialised.
func (r *PublicationRepo) RecomputeRating(ctx context.Context, tx *gorm.DB, publicationID uint64) (model.Publication, error) {
	db := conn(r.DB, tx).WithContext(ctx)

	var p model.Publication
	if err := forUpdate(db).First(&p, publicationID).Error; err != nil {
		return model.Publication{}, mapErr(err)
	}

	var agg struct {
		Avg *float64
		N   int64
	}
	err := db.Model(&model.Review{}).
		Select("AVG(rating) AS avg, COUNT(*) AS n").
		Where("publication_id = ? AND status = ?", publicationID, model.ReviewApproved).
		Scan(&agg).Error
	if err != nil {
		return model.Publication{}, err
	}

	rating := 0.0
	if agg.N > 0 && agg.Avg != nil {
		rating = *agg.Avg
	}
	err = db.Model(&model.Publication{}).Where("id = ?", publicationID).
		Updates(map[string]interface{}{"rating": rating, "review_count": agg.N}).Error
	if err != nil {
		return model.Publication{}, err
	}
	p.Rating = rating
	p.ReviewCount = int(agg.N)
	return p, nil
}
