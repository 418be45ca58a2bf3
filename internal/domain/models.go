package domain

import "time"

// Ad status values.
const (
	StatusActive  = "active"
	StatusSold    = "sold"
	StatusExpired = "expired"
)

// Ad transaction types.
const (
	TypeSell    = "sell"
	TypeBuy     = "buy"
	TypeRent    = "rent"
	TypeService = "service"
	TypeJob     = "job"
)

// Price types.
const (
	PriceFixed      = "fixed"
	PriceNegotiable = "negotiable"
	PriceFree       = "free"
	PriceContact    = "contact"
)

// Condition values (optional on an ad).
const (
	CondNew         = "new"
	CondUsed        = "used"
	CondRefurbished = "refurbished"
)

// AdLifetime is how long a new ad stays valid before its expiry timestamp.
// Expiry is stamped at creation; nothing flips status automatically.
const AdLifetime = 30 * 24 * time.Hour

// DefaultCurrency is applied when an ad is created without one.
const DefaultCurrency = "ILS"

type Ad struct {
	ID          string  `db:"id"`
	UserID      string  `db:"user_id"`
	Title       string  `db:"title"`
	Description string  `db:"description"`
	CategoryID  string  `db:"category_id"`
	Price       float64 `db:"price"`
	Currency    string  `db:"currency"`
	PriceType   string  `db:"price_type"` // fixed | negotiable | free | contact
	City        string  `db:"city"`
	Region      string  `db:"region"`
	Status      string  `db:"status"`    // active | sold | expired
	AdType      string  `db:"ad_type"`   // sell | buy | rent | service | job
	Condition   string  `db:"condition"` // new | used | refurbished | ""
	Featured    bool    `db:"featured"`
	Urgent      bool    `db:"urgent"`
	BusinessAd  bool    `db:"business_ad"`

	ContactName  string `db:"contact_name"`
	ContactPhone string `db:"contact_phone"`

	Views     int `db:"views"`
	Favorites int `db:"favorites"`
	Messages  int `db:"messages"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
	ExpiresAt time.Time `db:"expires_at"`

	// Favorited is per-viewer presentation state, kept on the record itself
	// (single logical viewer; no per-user favorite rows).
	Favorited bool `db:"favorited"`
}

// NewAd is the caller-supplied part of an ad; everything else is defaulted at
// creation time.
type NewAd struct {
	UserID       string
	Title        string
	Description  string
	CategoryID   string
	Price        float64
	Currency     string
	PriceType    string
	City         string
	Region       string
	AdType       string
	Condition    string
	Featured     bool
	Urgent       bool
	BusinessAd   bool
	ContactName  string
	ContactPhone string
}

type Category struct {
	ID        string `db:"id"`
	NameAr    string `db:"name_ar"`
	NameEn    string `db:"name_en"`
	Slug      string `db:"slug"`
	Icon      string `db:"icon"`
	Color     string `db:"color"`
	SortOrder int    `db:"sort_order"`
	Active    bool   `db:"active"`
}

// Filters narrows an ad listing. Zero values mean "no constraint"; the boolean
// flags only constrain when true.
type Filters struct {
	CategoryID string // exact match
	City       string // substring, case-insensitive
	Query      string // substring over title+description, case-insensitive
	Featured   bool
	Urgent     bool
}

// AdPage is one page of listing results, newest first.
type AdPage struct {
	Ads     []Ad
	Total   int
	Page    int
	Limit   int
	HasMore bool
}

type Stats struct {
	Ads        int `json:"ads"`
	Users      int `json:"users"`
	Categories int `json:"categories"`
}
