package repos

import (
	"time"

	"soukel/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = `
  id, email, name, password_hash, phone, city, address, avatar,
  business_name, business_verified, email_verified,
  notifications_enabled, profile_visible, language, status,
  created_at, updated_at`

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Create(u *domain.User) error {
	_, err := r.DB.NamedExec(`
	  INSERT INTO users(
	    id, email, name, password_hash, phone, city, address, avatar,
	    business_name, business_verified, email_verified,
	    notifications_enabled, profile_visible, language, status,
	    created_at, updated_at
	  ) VALUES(
	    :id, :email, :name, :password_hash, :phone, :city, :address, :avatar,
	    :business_name, :business_verified, :email_verified,
	    :notifications_enabled, :profile_visible, :language, :status,
	    :created_at, :updated_at
	  )`, u)
	return err
}

func (r *UserRepo) UpdatePassword(id, hash string) error {
	_, err := r.DB.Exec(`UPDATE users SET password_hash=?, updated_at=? WHERE id=?`, hash, time.Now(), id)
	return err
}

func (r *UserRepo) MarkVerified(id string) error {
	_, err := r.DB.Exec(`UPDATE users SET email_verified=1, updated_at=? WHERE id=?`, time.Now(), id)
	return err
}

// UpdateProfile applies only the fields set on the update.
func (r *UserRepo) UpdateProfile(id string, p domain.ProfileUpdate) error {
	set := `updated_at=?`
	args := []any{time.Now()}
	add := func(col string, v any) {
		set += `, ` + col + `=?`
		args = append(args, v)
	}
	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.Phone != nil {
		add("phone", *p.Phone)
	}
	if p.City != nil {
		add("city", *p.City)
	}
	if p.Address != nil {
		add("address", *p.Address)
	}
	if p.Avatar != nil {
		add("avatar", *p.Avatar)
	}
	if p.BusinessName != nil {
		add("business_name", *p.BusinessName)
	}
	if p.NotificationsEnabled != nil {
		add("notifications_enabled", *p.NotificationsEnabled)
	}
	if p.ProfileVisible != nil {
		add("profile_visible", *p.ProfileVisible)
	}
	if p.Language != nil {
		add("language", *p.Language)
	}
	if p.Status != nil {
		add("status", *p.Status)
	}
	args = append(args, id)
	_, err := r.DB.Exec(`UPDATE users SET `+set+` WHERE id=?`, args...)
	return err
}

func (r *UserRepo) BindSession(sid, userID string) error {
	now := time.Now()
	_, err := r.DB.Exec(`INSERT INTO sessions(id,user_id,created_at,last_seen)
	  VALUES(?,?,?,?)
	  ON CONFLICT(id) DO UPDATE SET user_id=excluded.user_id,last_seen=excluded.last_seen`,
		sid, userID, now, now)
	return err
}

func (r *UserRepo) SessionUser(sid string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
	  SELECT u.id,u.email,u.name,u.password_hash,u.phone,u.city,u.address,u.avatar,
	         u.business_name,u.business_verified,u.email_verified,
	         u.notifications_enabled,u.profile_visible,u.language,u.status,
	         u.created_at,u.updated_at
	  FROM sessions s
	  JOIN users u ON u.id=s.user_id
	  WHERE s.id=?`, sid)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) UnbindSession(sid string) error {
	_, err := r.DB.Exec(`UPDATE sessions SET user_id=NULL,last_seen=? WHERE id=?`, time.Now(), sid)
	return err
}

func (r *UserRepo) CountAll() (int, error) {
	var n int
	err := r.DB.Get(&n, `SELECT COUNT(*) FROM users`)
	return n, err
}

// ListPublic returns users for the admin panel, admin excluded. Password
// hashes stay out of the result.
func (r *UserRepo) ListPublic(adminEmail string) ([]domain.User, error) {
	var out []domain.User
	err := r.DB.Select(&out, `
	  SELECT id, email, name, phone, city, business_name, business_verified,
	         email_verified, status, created_at
	  FROM users
	  WHERE LOWER(email) != LOWER(?)
	  ORDER BY email`, adminEmail)
	return out, err
}
