package services

import (
	"soukel/internal/domain"
	"soukel/internal/store"
)

const (
	defaultPageSize = 12
	maxPageSize     = 48
)

// ListingService fronts whichever Store is configured (sqlite or mock).
type ListingService struct {
	Store store.Store
}

func NewListingService(s store.Store) *ListingService { return &ListingService{Store: s} }

func (s *ListingService) Categories() ([]domain.Category, error) {
	return s.Store.ListCategories()
}

func (s *ListingService) List(f domain.Filters, page, limit int) (*domain.AdPage, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return s.Store.ListAds(f, page, limit)
}

func (s *ListingService) Get(id string) (*domain.Ad, error) {
	return s.Store.GetAd(id)
}

func (s *ListingService) Create(in domain.NewAd) (*domain.Ad, error) {
	return s.Store.CreateAd(in)
}

func (s *ListingService) ToggleFavorite(id string) (bool, error) {
	return s.Store.ToggleFavorite(id)
}

func (s *ListingService) Stats() (domain.Stats, error) {
	return s.Store.Stats()
}
