package repos

import (
	"soukel/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List() ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.Select(&out, `
	  SELECT id, name_ar, name_en, slug, icon, color, sort_order, active
	  FROM categories
	  WHERE active = 1
	  ORDER BY sort_order
	`)
	return out, err
}

func (r *CategoryRepo) CountAll() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM categories`)
	return n, err
}
