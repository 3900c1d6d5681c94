package service

import (
	"context"

	"github.com/iliyamo/periodical-store/internal/model"
	"github.com/iliyamo/periodical-store/internal/pricing"
	"github.com/iliyamo/periodical-store/internal/repository"
)

// CartView is the cart with its pricing recomputed on read.
type CartView struct {
	Items []model.CartItem `json:"items"`
	pricing.Summary
}

type CartService struct {
	Carts *repository.CartRepo
	Pubs  *repository.PublicationRepo
}

func NewCartService(carts *repository.CartRepo, pubs *repository.PublicationRepo) *CartService {
	return &CartService{Carts: carts, Pubs: pubs}
}

// View returns the user's cart.
func (s *CartService) View(ctx context.Context, userID uint64) (CartView, error) {
	items, err := s.Carts.List(ctx, nil, userID)
	if err != nil {
		return CartView{}, err
	}
	if items == nil {
		items = []model.CartItem{}
	}
	return CartView{Items: items, Summary: pricing.Summarize(cartLines(items))}, nil
}

// Add puts a publication in the cart.  It is idempotent.  An unknown
// publication yields repository.ErrNotFound.
func (s *CartService) Add(ctx context.Context, userID, publicationID uint64) (CartView, error) {
	if _, err := s.Pubs.GetByID(ctx, publicationID); err != nil {
		return CartView{}, err
	}
	if err := s.Carts.Add(ctx, userID, publicationID); err != nil {
		return CartView{}, err
	}
	return s.View(ctx, userID)
}

// Remove drops a publication from the cart.
func (s *CartService) Remove(ctx context.Context, userID, publicationID uint64) (CartView, error) {
	if err := s.Carts.Remove(ctx, userID, publicationID); err != nil {
		return CartView{}, err
	}
	return s.View(ctx, userID)
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context, userID uint64) (CartView, error) {
	if err := s.Carts.Clear(ctx, nil, userID); err != nil {
		return CartView{}, err
	}
	return s.View(ctx, userID)
}

func cartLines(items []model.CartItem) []pricing.Line {
	lines := make([]pricing.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, pricing.Line{
			Type:      it.Publication.Type,
			UnitPrice: it.Publication.Price,
			Quantity:  it.Quantity,
		})
	}
	return lines
}
