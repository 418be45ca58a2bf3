package store_test

import (
	"strings"
	"testing"
	"time"

	"soukel/internal/domain"
	"soukel/internal/store"
)

func newMock(t *testing.T) *store.MockStore {
	t.Helper()
	return store.NewMockStore(0, 0)
}

func TestListAdsNewestFirst(t *testing.T) {
	s := newMock(t)
	page, err := s.ListAds(domain.Filters{}, 1, 50)
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Ads) == 0 {
		t.Fatal("no seeded ads")
	}
	for i := 1; i < len(page.Ads); i++ {
		if page.Ads[i].CreatedAt.After(page.Ads[i-1].CreatedAt) {
			t.Fatalf("ads not sorted newest first at index %d", i)
		}
	}
}

func TestListAdsFilters(t *testing.T) {
	s := newMock(t)

	all, err := s.ListAds(domain.Filters{}, 1, 50)
	if err != nil {
		t.Fatal(err)
	}
	catID := all.Ads[0].CategoryID

	byCat, err := s.ListAds(domain.Filters{CategoryID: catID}, 1, 50)
	if err != nil {
		t.Fatal(err)
	}
	if len(byCat.Ads) == 0 {
		t.Fatal("category filter matched nothing")
	}
	for _, a := range byCat.Ads {
		if a.CategoryID != catID {
			t.Fatalf("ad %s has category %s, want %s", a.ID, a.CategoryID, catID)
		}
	}

	featured, err := s.ListAds(domain.Filters{Featured: true}, 1, 50)
	if err != nil {
		t.Fatal(err)
	}
	for _, a := range featured.Ads {
		if !a.Featured {
			t.Fatalf("non-featured ad %s in featured results", a.ID)
		}
	}

	// city match is a case-insensitive substring
	city := all.Ads[0].City
	byCity, err := s.ListAds(domain.Filters{City: city}, 1, 50)
	if err != nil {
		t.Fatal(err)
	}
	if len(byCity.Ads) == 0 {
		t.Fatalf("city filter %q matched nothing", city)
	}
	for _, a := range byCity.Ads {
		if !strings.Contains(a.City, city) {
			t.Fatalf("ad %s city %q does not contain %q", a.ID, a.City, city)
		}
	}

	// query searches title and description
	q := string([]rune(all.Ads[0].Title)[:3])
	byQuery, err := s.ListAds(domain.Filters{Query: q}, 1, 50)
	if err != nil {
		t.Fatal(err)
	}
	if len(byQuery.Ads) == 0 {
		t.Fatalf("query %q matched nothing", q)
	}
}

func TestListAdsPagination(t *testing.T) {
	s := newMock(t)
	all, _ := s.ListAds(domain.Filters{}, 1, 50)
	total := all.Total
	if total < 3 {
		t.Fatalf("need at least 3 seeded ads, got %d", total)
	}

	p1, err := s.ListAds(domain.Filters{}, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(p1.Ads) != 2 {
		t.Fatalf("page 1 len = %d", len(p1.Ads))
	}
	if !p1.HasMore {
		t.Fatal("page 1 of >2 ads should have more")
	}

	p2, err := s.ListAds(domain.Filters{}, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if p2.Ads[0].ID == p1.Ads[0].ID {
		t.Fatal("page 2 repeats page 1")
	}
	if p2.Total != total {
		t.Fatalf("total changed across pages: %d vs %d", p2.Total, total)
	}

	// a page past the end is empty, not an error
	far, err := s.ListAds(domain.Filters{}, 99, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(far.Ads) != 0 || far.HasMore {
		t.Fatalf("page past end: %+v", far)
	}
}

func TestGetAdIncrementsViews(t *testing.T) {
	s := newMock(t)
	all, _ := s.ListAds(domain.Filters{}, 1, 1)
	id := all.Ads[0].ID

	a1, err := s.GetAd(id)
	if err != nil {
		t.Fatal(err)
	}
	a2, err := s.GetAd(id)
	if err != nil {
		t.Fatal(err)
	}
	if a2.Views != a1.Views+1 {
		t.Fatalf("views did not increment: %d then %d", a1.Views, a2.Views)
	}

	if _, err := s.GetAd("nope"); err != store.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateAdDefaults(t *testing.T) {
	s := newMock(t)
	before := time.Now()
	a, err := s.CreateAd(domain.NewAd{
		UserID:     "user_demo",
		Title:      "دراجة هوائية",
		CategoryID: "cat_vehicles",
		Price:      400,
		City:       "الخليل",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(a.ID, "mock_") {
		t.Fatalf("unexpected id %q", a.ID)
	}
	if a.Currency != domain.DefaultCurrency {
		t.Fatalf("currency = %q, want %q", a.Currency, domain.DefaultCurrency)
	}
	if a.PriceType != domain.PriceFixed || a.AdType != domain.TypeSell {
		t.Fatalf("type defaults not applied: %+v", a)
	}
	if a.Status != domain.StatusActive {
		t.Fatalf("status = %q", a.Status)
	}
	wantExpiry := a.CreatedAt.Add(domain.AdLifetime)
	if !a.ExpiresAt.Equal(wantExpiry) {
		t.Fatalf("expiry = %v, want created + 30d", a.ExpiresAt)
	}
	if a.CreatedAt.Before(before.Truncate(time.Second)) {
		t.Fatalf("created_at in the past: %v", a.CreatedAt)
	}

	// new ad appears first in the listing
	page, _ := s.ListAds(domain.Filters{}, 1, 1)
	if page.Ads[0].ID != a.ID {
		t.Fatalf("new ad not first, got %s", page.Ads[0].ID)
	}
}

func TestToggleFavoriteIsSelfInverse(t *testing.T) {
	s := newMock(t)
	all, _ := s.ListAds(domain.Filters{}, 1, 1)
	id := all.Ads[0].ID
	startFavs := all.Ads[0].Favorites

	on, err := s.ToggleFavorite(id)
	if err != nil {
		t.Fatal(err)
	}
	off, err := s.ToggleFavorite(id)
	if err != nil {
		t.Fatal(err)
	}
	if on == off {
		t.Fatalf("toggle did not invert: %v then %v", on, off)
	}

	a, _ := s.GetAd(id)
	if a.Favorites != startFavs {
		t.Fatalf("favorite count drifted: %d -> %d", startFavs, a.Favorites)
	}

	if _, err := s.ToggleFavorite("nope"); err != store.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStats(t *testing.T) {
	s := newMock(t)
	st, err := s.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if st.Ads == 0 || st.Users == 0 || st.Categories == 0 {
		t.Fatalf("empty stats: %+v", st)
	}

	if _, err := s.CreateAd(domain.NewAd{UserID: "u", Title: "t", CategoryID: "c"}); err != nil {
		t.Fatal(err)
	}
	st2, _ := s.Stats()
	if st2.Ads != st.Ads+1 {
		t.Fatalf("ad count did not grow: %d -> %d", st.Ads, st2.Ads)
	}
}
