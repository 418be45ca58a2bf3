package repos

import (
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed demo marketplace data if the DB is empty
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	// Ensure demo accounts exist (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Categories: static reference data
CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  name_ar TEXT NOT NULL,
  name_en TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  icon TEXT NOT NULL DEFAULT '',
  color TEXT NOT NULL DEFAULT '',
  sort_order INTEGER NOT NULL DEFAULT 0,
  active INTEGER NOT NULL DEFAULT 1
);

-- Users & profile fields
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  phone TEXT NOT NULL DEFAULT '',
  city TEXT NOT NULL DEFAULT '',
  address TEXT NOT NULL DEFAULT '',
  avatar TEXT NOT NULL DEFAULT '',
  business_name TEXT NOT NULL DEFAULT '',
  business_verified INTEGER NOT NULL DEFAULT 0,
  email_verified INTEGER NOT NULL DEFAULT 0,
  notifications_enabled INTEGER NOT NULL DEFAULT 1,
  profile_visible INTEGER NOT NULL DEFAULT 1,
  language TEXT NOT NULL DEFAULT 'ar',
  status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active','suspended','pending')),
  created_at TIMESTAMP NOT NULL,
  updated_at TIMESTAMP NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

-- Ads
CREATE TABLE IF NOT EXISTS ads(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  title TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
  price NUMERIC NOT NULL DEFAULT 0 CHECK (price >= 0),
  currency TEXT NOT NULL DEFAULT 'ILS',
  price_type TEXT NOT NULL DEFAULT 'fixed' CHECK (price_type IN ('fixed','negotiable','free','contact')),
  city TEXT NOT NULL DEFAULT '',
  region TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active','sold','expired')),
  ad_type TEXT NOT NULL DEFAULT 'sell' CHECK (ad_type IN ('sell','buy','rent','service','job')),
  condition TEXT NOT NULL DEFAULT '' CHECK (condition IN ('','new','used','refurbished')),
  featured INTEGER NOT NULL DEFAULT 0,
  urgent INTEGER NOT NULL DEFAULT 0,
  business_ad INTEGER NOT NULL DEFAULT 0,
  contact_name TEXT NOT NULL DEFAULT '',
  contact_phone TEXT NOT NULL DEFAULT '',
  views INTEGER NOT NULL DEFAULT 0,
  favorites INTEGER NOT NULL DEFAULT 0,
  messages INTEGER NOT NULL DEFAULT 0,
  favorited INTEGER NOT NULL DEFAULT 0,
  created_at TIMESTAMP NOT NULL,
  updated_at TIMESTAMP NOT NULL,
  expires_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_ads_category   ON ads(category_id);
CREATE INDEX IF NOT EXISTS idx_ads_city       ON ads(LOWER(city));
CREATE INDEX IF NOT EXISTS idx_ads_created_at ON ads(created_at);
CREATE INDEX IF NOT EXISTS idx_ads_status     ON ads(status);

-- Sessions: id matches the 'sid' cookie
CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TIMESTAMP NOT NULL,
  last_seen  TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo categories/ads")

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	tx.MustExec(`INSERT INTO categories(id,name_ar,name_en,slug,icon,color,sort_order) VALUES
	  ('cat_vehicles','مركبات','Vehicles','vehicles','car','#2563eb',1),
	  ('cat_realestate','عقارات','Real Estate','real-estate','home','#16a34a',2),
	  ('cat_electronics','إلكترونيات','Electronics','electronics','cpu','#9333ea',3),
	  ('cat_fashion','أزياء','Fashion','fashion','shirt','#db2777',4),
	  ('cat_furniture','أثاث','Furniture','furniture','sofa','#d97706',5),
	  ('cat_jobs','وظائف','Jobs','jobs','briefcase','#0891b2',6),
	  ('cat_services','خدمات','Services','services','wrench','#64748b',7)`)

	now := time.Now()
	users := []struct{ id, email, name string }{
		{"user_demo", "ahmad@example.ps", "أحمد خليل"},
		{"user_biz", "salam.motors@example.ps", "معرض السلام للسيارات"},
	}
	for _, u := range users {
		h, _ := bcrypt.GenerateFromPassword([]byte("Souk1234!"), 12)
		tx.MustExec(`INSERT INTO users(id,email,name,password_hash,status,created_at,updated_at)
		  VALUES(?,?,?,?,'active',?,?) ON CONFLICT(email) DO NOTHING`,
			u.id, u.email, u.name, string(h), now, now)
	}
	tx.MustExec(`UPDATE users SET business_name='معرض السلام', business_verified=1 WHERE id='user_biz'`)

	type seedAd struct {
		id, userID, title, desc, cat, city, adType, priceType string
		price                                                 float64
		featured                                              bool
		age                                                   time.Duration
	}
	ads := []seedAd{
		{"ad_seed_1", "user_biz", "هيونداي افانتي 2019", "سيارة بحالة ممتازة، صيانة وكالة", "cat_vehicles", "رام الله", "sell", "fixed", 62000, true, 2 * time.Hour},
		{"ad_seed_2", "user_demo", "شقة للإيجار قرب الجامعة", "شقة ثلاث غرف قرب جامعة بيرزيت", "cat_realestate", "بيرزيت", "rent", "negotiable", 1800, false, 6 * time.Hour},
		{"ad_seed_3", "user_demo", "آيفون 13 برو", "مع الكرتونة والشاحن", "cat_electronics", "نابلس", "sell", "fixed", 2900, false, 24 * time.Hour},
	}
	for _, a := range ads {
		created := now.Add(-a.age)
		tx.MustExec(`INSERT INTO ads(id,user_id,title,description,category_id,price,price_type,city,ad_type,featured,created_at,updated_at,expires_at)
		  VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			a.id, a.userID, a.title, a.desc, a.cat, a.price, a.priceType, a.city, a.adType, a.featured,
			created, created, created.Add(30*24*time.Hour))
	}

	return tx.Commit()
}

// seedUsers ensures the admin account exists (idempotent).
func seedUsers(db *sqlx.DB) error {
	h, _ := bcrypt.GenerateFromPassword([]byte("Admin1234!"), 12)
	now := time.Now()
	_, err := db.Exec(`INSERT INTO users(id,email,name,password_hash,email_verified,status,created_at,updated_at)
	  VALUES('user_admin','admin@soukel.ps','مدير الموقع',?,1,'active',?,?)
	  ON CONFLICT(email) DO NOTHING`, string(h), now, now)
	return err
}
