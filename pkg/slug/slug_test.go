package slug_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"soukel/pkg/slug"
)

func TestFrom(t *testing.T) {
	cases := map[string]string{
		"Real Estate":      "real-estate",
		"Vehicles & Cars":  "vehicles-cars",
		"Café Déjà Vu":     "cafe-deja-vu",
		"  spaced  out  ":  "spaced-out",
		"UPPER":            "upper",
		"already-a-slug":   "already-a-slug",
		"numbers 123 ok":   "numbers-123-ok",
		"---":              "",
		"iPhone 13 Pro!!!": "iphone-13-pro",
	}
	for in, want := range cases {
		require.Equal(t, want, slug.From(in), "From(%q)", in)
	}
}
