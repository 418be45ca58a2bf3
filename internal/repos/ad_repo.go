package repos

import (
	"database/sql"
	"errors"

	"soukel/internal/domain"

	"github.com/jmoiron/sqlx"
)

type AdRepo struct{ db *sqlx.DB }

func NewAdRepo(db *sqlx.DB) *AdRepo { return &AdRepo{db: db} }

const adCols = `
  id, user_id, title, description, category_id, price, currency, price_type,
  city, region, status, ad_type, condition, featured, urgent, business_ad,
  contact_name, contact_phone, views, favorites, messages, favorited,
  created_at, updated_at, expires_at`

func filterWhere(f domain.Filters) (string, []any) {
	where := `1=1`
	args := []any{}
	if f.CategoryID != "" {
		where += ` AND category_id = ?`
		args = append(args, f.CategoryID)
	}
	if f.City != "" {
		where += ` AND LOWER(city) LIKE '%' || LOWER(?) || '%'`
		args = append(args, f.City)
	}
	if f.Query != "" {
		where += ` AND (LOWER(title) LIKE '%' || LOWER(?) || '%' OR LOWER(description) LIKE '%' || LOWER(?) || '%')`
		args = append(args, f.Query, f.Query)
	}
	if f.Featured {
		where += ` AND featured = 1`
	}
	if f.Urgent {
		where += ` AND urgent = 1`
	}
	return where, args
}

func (r *AdRepo) List(f domain.Filters, limit, offset int) ([]domain.Ad, error) {
	where, args := filterWhere(f)
	args = append(args, limit, offset)
	var out []domain.Ad
	err := r.db.Select(&out, `
	  SELECT `+adCols+`
	  FROM ads
	  WHERE `+where+`
	  ORDER BY created_at DESC
	  LIMIT ? OFFSET ?`, args...)
	return out, err
}

func (r *AdRepo) Count(f domain.Filters) (int, error) {
	where, args := filterWhere(f)
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM ads WHERE `+where, args...)
	return n, err
}

func (r *AdRepo) Get(id string) (domain.Ad, error) {
	var a domain.Ad
	err := r.db.Get(&a, `SELECT `+adCols+` FROM ads WHERE id = ?`, id)
	return a, err
}

// IncrementViews bumps the view counter. Reports whether the ad exists.
func (r *AdRepo) IncrementViews(id string) (bool, error) {
	res, err := r.db.Exec(`UPDATE ads SET views = views + 1 WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *AdRepo) Insert(a domain.Ad) error {
	_, err := r.db.NamedExec(`
	  INSERT INTO ads(
	    id, user_id, title, description, category_id, price, currency, price_type,
	    city, region, status, ad_type, condition, featured, urgent, business_ad,
	    contact_name, contact_phone, views, favorites, messages, favorited,
	    created_at, updated_at, expires_at
	  ) VALUES(
	    :id, :user_id, :title, :description, :category_id, :price, :currency, :price_type,
	    :city, :region, :status, :ad_type, :condition, :featured, :urgent, :business_ad,
	    :contact_name, :contact_phone, :views, :favorites, :messages, :favorited,
	    :created_at, :updated_at, :expires_at
	  )`, a)
	return err
}

// ToggleFavorite flips the favorited flag and moves the favorites counter with
// it, in one transaction. Returns the new flag value.
func (r *AdRepo) ToggleFavorite(id string) (bool, bool, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return false, false, err
	}
	defer func() { _ = tx.Rollback() }()

	var fav bool
	if err := tx.Get(&fav, `SELECT favorited FROM ads WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, false, nil
		}
		return false, false, err
	}
	delta := 1
	if fav {
		delta = -1
	}
	if _, err := tx.Exec(`UPDATE ads SET favorited = NOT favorited, favorites = favorites + ? WHERE id = ?`, delta, id); err != nil {
		return false, false, err
	}
	if err := tx.Commit(); err != nil {
		return false, false, err
	}
	return !fav, true, nil
}

func (r *AdRepo) CountAll() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM ads`)
	return n, err
}

func (r *AdRepo) ListLatest(limit int) ([]domain.Ad, error) {
	var out []domain.Ad
	err := r.db.Select(&out, `
	  SELECT `+adCols+`
	  FROM ads
	  ORDER BY created_at DESC
	  LIMIT ?`, limit)
	return out, err
}
