package store

import (
	"database/sql"
	"errors"
	"time"

	"soukel/internal/domain"
	"soukel/internal/repos"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// SQLStore is the sqlite-backed listing store.
type SQLStore struct {
	ads   *repos.AdRepo
	cats  *repos.CategoryRepo
	users *repos.UserRepo
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{
		ads:   repos.NewAdRepo(db),
		cats:  repos.NewCategoryRepo(db),
		users: repos.NewUserRepo(db),
	}
}

func (s *SQLStore) ListCategories() ([]domain.Category, error) {
	return s.cats.List()
}

func (s *SQLStore) ListAds(f domain.Filters, page, limit int) (*domain.AdPage, error) {
	total, err := s.ads.Count(f)
	if err != nil {
		return nil, err
	}
	ads, err := s.ads.List(f, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	return &domain.AdPage{
		Ads:     ads,
		Total:   total,
		Page:    page,
		Limit:   limit,
		HasMore: page*limit < total,
	}, nil
}

func (s *SQLStore) GetAd(id string) (*domain.Ad, error) {
	found, err := s.ads.IncrementViews(id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	a, err := s.ads.Get(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (s *SQLStore) CreateAd(in domain.NewAd) (*domain.Ad, error) {
	now := time.Now()
	a := domain.Ad{
		ID:           "ad_" + uuid.NewString(),
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
	if err := s.ads.Insert(a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *SQLStore) ToggleFavorite(id string) (bool, error) {
	fav, found, err := s.ads.ToggleFavorite(id)
	if err != nil {
		return false, err
	}
	if !found {
		return false, ErrNotFound
	}
	return fav, nil
}

func (s *SQLStore) Stats() (domain.Stats, error) {
	var st domain.Stats
	var err error
	if st.Ads, err = s.ads.CountAll(); err != nil {
		return st, err
	}
	if st.Users, err = s.users.CountAll(); err != nil {
		return st, err
	}
	if st.Categories, err = s.cats.CountAll(); err != nil {
		return st, err
	}
	return st, nil
}
