package services

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Gorilla Mug", "gorilla-mug"},
		{"  Dark  Roast 250g  ", "dark-roast-250g"},
		{"Café au Lait!", "café-au-lait"},
		{"---", ""},
		{"UPPER_case & symbols", "upper-case-symbols"},
	}

	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
