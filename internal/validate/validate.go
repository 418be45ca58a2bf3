package validate

import (
	"regexp"
	"strconv"
	"strings"

	"soukel/internal/format"
)

var (
	reEmail  = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID     = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reSlug   = regexp.MustCompile(`^[a-z0-9-]{1,64}$`)
	reAdType = regexp.MustCompile(`^(sell|buy|rent|service|job)$`)
	reCond   = regexp.MustCompile(`^(new|used|refurbished)$`)
	rePrice  = regexp.MustCompile(`^(fixed|negotiable|free|contact)$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 80 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// ID validates a simple resource identifier (ad/category/user ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Slug validates a category slug as it appears in URLs.
func Slug(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reSlug.MatchString(s)
}

// AdType validates allowed transaction type enums.
func AdType(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reAdType.MatchString(s)
}

// Condition validates allowed condition enums; empty is allowed (optional field).
func Condition(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	return s, reCond.MatchString(s)
}

// PriceType validates allowed price type enums; empty falls back to a default later.
func PriceType(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	return s, rePrice.MatchString(s)
}

// Title validates an ad title.
func Title(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len([]rune(s)) > 100 {
		return "", false
	}
	return s, true
}

// Name validates a displayable person name.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len([]rune(s)) > 50 {
		return "", false
	}
	return s, true
}

// Phone validates a Palestinian mobile number and returns its local form.
func Phone(s string) (string, bool) {
	n := format.NormalizePhone(s)
	return n, format.IsValidPalestinianPhone(s)
}

// Price parses a non-negative amount; empty means zero.
func Price(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || v > 100_000_000 {
		return 0, false
	}
	return v, true
}

// Password enforces a minimum strength for signup.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 72 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z':
			hasLetter = true
		case '0' <= r && r <= '9':
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// Page parses a 1-based page number, clamping bad input to 1.
func Page(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
