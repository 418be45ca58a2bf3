// Package store defines the listing data source used by the services layer.
// Two implementations exist: the sqlite-backed SQLStore and an in-memory
// MockStore used when MOCK_DATA is enabled during development.
package store

import (
	"errors"

	"soukel/internal/domain"
)

var ErrNotFound = errors.New("ad not found")

type Store interface {
	ListCategories() ([]domain.Category, error)

	// ListAds returns one page of ads matching the filters, newest first.
	ListAds(f domain.Filters, page, limit int) (*domain.AdPage, error)

	// GetAd returns an ad by id. Every call increments the ad's view counter;
	// there is no per-viewer deduplication.
	GetAd(id string) (*domain.Ad, error)

	// CreateAd fills in defaults (currency, status, expiry) and stores the ad.
	CreateAd(in domain.NewAd) (*domain.Ad, error)

	// ToggleFavorite flips the favorited flag and adjusts the favorites
	// counter. Returns the new flag value.
	ToggleFavorite(id string) (bool, error)

	Stats() (domain.Stats, error)
}
