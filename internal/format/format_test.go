package format_test

import (
	"testing"
	"time"

	"soukel/internal/format"
)

func TestFileSize(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0 بايت"},
		{-5, "0 بايت"},
		{1, "1 بايت"},
		{512, "512 بايت"},
		{1024, "1 كيلوبايت"},
		{1536, "1.5 كيلوبايت"},
		{1048576, "1 ميجابايت"},
		{5 * 1024 * 1024 * 1024, "5 جيجابايت"},
	}
	for _, c := range cases {
		if got := format.FileSize(c.in); got != c.want {
			t.Errorf("FileSize(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestPalestinianPhone(t *testing.T) {
	valid := []string{
		"0591234567",
		"0561234567",
		"+970591234567",
		"+972591234567",
		"00970591234567",
		"059-123-4567",
		" 0591234567 ",
	}
	for _, p := range valid {
		if !format.IsValidPalestinianPhone(p) {
			t.Errorf("expected %q to be valid", p)
		}
	}
	invalid := []string{
		"12345",
		"",
		"0581234567",
		"059123456",
		"05912345678",
		"+1591234567",
		"abcdefghij",
	}
	for _, p := range invalid {
		if format.IsValidPalestinianPhone(p) {
			t.Errorf("expected %q to be invalid", p)
		}
	}
}

func TestNormalizePhone(t *testing.T) {
	if got := format.NormalizePhone("+970 59 123 4567"); got != "0591234567" {
		t.Fatalf("got %q", got)
	}
	if got := format.NormalizePhone("00972591234567"); got != "0591234567" {
		t.Fatalf("got %q", got)
	}
	// no recognized prefix: cleaned but otherwise untouched
	if got := format.NormalizePhone("059 123"); got != "059123" {
		t.Fatalf("got %q", got)
	}
}

func TestCurrency(t *testing.T) {
	if got := format.Currency(1234, "ILS"); got != "₪ 1,234" {
		t.Fatalf("got %q", got)
	}
	if got := format.Currency(62000, "ILS"); got != "₪ 62,000" {
		t.Fatalf("got %q", got)
	}
	if got := format.Currency(1234.5, "USD"); got != "$ 1,234.50" {
		t.Fatalf("got %q", got)
	}
	// unknown code falls back to the code itself
	if got := format.Currency(10, "XYZ"); got != "XYZ 10" {
		t.Fatalf("got %q", got)
	}
}

func TestRelativeDate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	if got := format.RelativeDate(now.Add(-30*time.Second), now); got != "الآن" {
		t.Fatalf("got %q", got)
	}
	if got := format.RelativeDate(now.Add(-5*time.Minute), now); got != "منذ 5 دقيقة" {
		t.Fatalf("got %q", got)
	}
	if got := format.RelativeDate(now.Add(-3*time.Hour), now); got != "منذ 3 ساعة" {
		t.Fatalf("got %q", got)
	}
	if got := format.RelativeDate(now.Add(-48*time.Hour), now); got != "منذ 2 يوم" {
		t.Fatalf("got %q", got)
	}
	// older than a month: absolute date
	old := now.Add(-40 * 24 * time.Hour)
	if got := format.RelativeDate(old, now); got != format.Date(old) {
		t.Fatalf("got %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := format.Truncate("مرحبا بالعالم", 6); got != "مرحبا …" {
		t.Fatalf("got %q", got)
	}
	if got := format.Truncate("short", 10); got != "short" {
		t.Fatalf("got %q", got)
	}
}
