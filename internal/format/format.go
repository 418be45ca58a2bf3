// Package format holds the Arabic display formatting used across page
// templates: currency, relative dates, file sizes and Palestinian phone
// numbers.
package format

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var currencySymbols = map[string]string{
	"ILS": "₪",
	"USD": "$",
	"EUR": "€",
	"JOD": "د.أ",
}

// Currency renders an amount with its symbol and thousands separators,
// e.g. Currency(1234, "ILS") -> "₪ 1,234".
func Currency(amount float64, code string) string {
	sym, ok := currencySymbols[code]
	if !ok {
		sym = code
	}
	return sym + " " + group(amount)
}

func group(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if math.Trunc(v) == v {
		s = strconv.FormatFloat(v, 'f', 0, 64)
	} else {
		s = strconv.FormatFloat(v, 'f', 2, 64)
	}
	intPart, frac, _ := strings.Cut(s, ".")
	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")
	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	out := b.String()
	if frac != "" {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}

var sizeUnits = []string{"بايت", "كيلوبايت", "ميجابايت", "جيجابايت"}

// FileSize renders a byte count for display: FileSize(0) -> "0 بايت",
// FileSize(1536) -> "1.5 كيلوبايت".
func FileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 " + sizeUnits[0]
	}
	v := float64(bytes)
	i := 0
	for v >= 1024 && i < len(sizeUnits)-1 {
		v /= 1024
		i++
	}
	v = math.Round(v*10) / 10
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizeUnits[i]
}

// Date renders a timestamp the way listing cards show it.
func Date(t time.Time) string {
	return t.Format("02/01/2006")
}

// RelativeDate renders an Arabic "time ago" string relative to now.
func RelativeDate(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "الآن"
	case d < time.Hour:
		return fmt.Sprintf("منذ %d دقيقة", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("منذ %d ساعة", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("منذ %d يوم", int(d.Hours()/24))
	default:
		return Date(t)
	}
}

// Palestinian mobile numbers: 059x (Jawwal) and 056x (Ooredoo), locally or with
// a +970/+972 country prefix.
var rePSPhone = regexp.MustCompile(`^05[69][0-9]{7}$`)

// NormalizePhone strips separators and country prefixes down to the local
// 05XXXXXXXX form. Returns the cleaned input unchanged if no prefix matched.
func NormalizePhone(s string) string {
	s = strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' || r == '+' {
			return r
		}
		return -1
	}, strings.TrimSpace(s))
	if strings.HasPrefix(s, "00") {
		s = "+" + s[2:]
	}
	for _, cc := range []string{"+970", "+972"} {
		if strings.HasPrefix(s, cc) {
			return "0" + s[len(cc):]
		}
	}
	return s
}

// IsValidPalestinianPhone reports whether s is a Palestinian mobile number in
// local or international form.
func IsValidPalestinianPhone(s string) bool {
	return rePSPhone.MatchString(NormalizePhone(s))
}

// Truncate shortens s to at most n runes, appending an ellipsis when cut.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
