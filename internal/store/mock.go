package store

import (
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"soukel/internal/domain"
)

// MockStore is the development stand-in for a real backend: a seeded in-memory
// ad collection with linear-scan filtering and an artificial per-call delay to
// mimic network latency. Construct one explicitly and pass it to the service;
// there is no process-wide instance.
type MockStore struct {
	mu    sync.Mutex
	ads   []domain.Ad
	cats  []domain.Category
	users []domain.User

	minDelay time.Duration
	maxDelay time.Duration
	now      func() time.Time
}

// NewMockStore seeds demo data. Delays bound the simulated latency per
// operation; pass zeros to disable sleeping (tests do).
func NewMockStore(minDelay, maxDelay time.Duration) *MockStore {
	s := &MockStore{minDelay: minDelay, maxDelay: maxDelay, now: time.Now}
	s.seed()
	return s
}

func (s *MockStore) sleep() {
	if s.maxDelay <= 0 {
		return
	}
	d := s.minDelay
	if s.maxDelay > s.minDelay {
		d += time.Duration(rand.Int63n(int64(s.maxDelay - s.minDelay)))
	}
	time.Sleep(d)
}

func (s *MockStore) ListCategories() ([]domain.Category, error) {
	s.sleep()
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Category, len(s.cats))
	copy(out, s.cats)
	return out, nil
}

func matches(a domain.Ad, f domain.Filters) bool {
	if f.CategoryID != "" && a.CategoryID != f.CategoryID {
		return false
	}
	if f.City != "" && !strings.Contains(strings.ToLower(a.City), strings.ToLower(f.City)) {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(a.Title), q) &&
			!strings.Contains(strings.ToLower(a.Description), q) {
			return false
		}
	}
	if f.Featured && !a.Featured {
		return false
	}
	if f.Urgent && !a.Urgent {
		return false
	}
	return true
}

func (s *MockStore) ListAds(f domain.Filters, page, limit int) (*domain.AdPage, error) {
	s.sleep()
	s.mu.Lock()
	defer s.mu.Unlock()

	var hits []domain.Ad
	for _, a := range s.ads {
		if matches(a, f) {
			hits = append(hits, a)
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].CreatedAt.After(hits[j].CreatedAt)
	})

	total := len(hits)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	pageAds := make([]domain.Ad, end-start)
	copy(pageAds, hits[start:end])

	return &domain.AdPage{
		Ads:     pageAds,
		Total:   total,
		Page:    page,
		Limit:   limit,
		HasMore: page*limit < total,
	}, nil
}

func (s *MockStore) GetAd(id string) (*domain.Ad, error) {
	s.sleep()
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.ads {
		if s.ads[i].ID == id {
			s.ads[i].Views++
			a := s.ads[i]
			return &a, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MockStore) CreateAd(in domain.NewAd) (*domain.Ad, error) {
	s.sleep()
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	a := domain.Ad{
		ID:           "mock_" + strconv.FormatInt(now.UnixMilli(), 10),
		UserID:       in.UserID,
		Title:        in.Title,
		Description:  in.Description,
		CategoryID:   in.CategoryID,
		Price:        in.Price,
		Currency:     in.Currency,
		PriceType:    in.PriceType,
		City:         in.City,
		Region:       in.Region,
		Status:       domain.StatusActive,
		AdType:       in.AdType,
		Condition:    in.Condition,
		Featured:     in.Featured,
		Urgent:       in.Urgent,
		BusinessAd:   in.BusinessAd,
		ContactName:  in.ContactName,
		ContactPhone: in.ContactPhone,
		CreatedAt:    now,
		UpdatedAt:    now,
		ExpiresAt:    now.Add(domain.AdLifetime),
	}
	if a.Currency == "" {
		a.Currency = domain.DefaultCurrency
	}
	if a.PriceType == "" {
		a.PriceType = domain.PriceFixed
	}
	if a.AdType == "" {
		a.AdType = domain.TypeSell
	}

	// Newest first, like the backend would return it.
	s.ads = append([]domain.Ad{a}, s.ads...)
	return &a, nil
}

func (s *MockStore) ToggleFavorite(id string) (bool, error) {
	s.sleep()
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.ads {
		if s.ads[i].ID == id {
			s.ads[i].Favorited = !s.ads[i].Favorited
			if s.ads[i].Favorited {
				s.ads[i].Favorites++
			} else {
				s.ads[i].Favorites--
			}
			return s.ads[i].Favorited, nil
		}
	}
	return false, ErrNotFound
}

func (s *MockStore) Stats() (domain.Stats, error) {
	s.sleep()
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Stats{Ads: len(s.ads), Users: len(s.users), Categories: len(s.cats)}, nil
}
