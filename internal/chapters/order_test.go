package chapters

import (
	"errors"
	"testing"
)

func TestDerivePosition(t *testing.T) {
	cases := []struct {
		path string
		want int
	}{
		{"introduction.md", 1},
		{"content/introduction.md", 1},
		{"Introduction.md", 1},
		{"chapter-01.md", 2},
		{"chapter-03.md", 4},
		{"12-closures.md", 13},
		{"content/book/chapter-7.md", 8},
	}

	for _, tc := range cases {
		got, err := DerivePosition(tc.path)
		if err != nil {
			t.Fatalf("DerivePosition(%q): %v", tc.path, err)
		}
		if got != tc.want {
			t.Fatalf("DerivePosition(%q) = %d, want %d", tc.path, got, tc.want)
		}
	}
}

func TestDerivePositionUnknown(t *testing.T) {
	for _, p := range []string{"appendix.md", "notes/random.md", ""} {
		if _, err := DerivePosition(p); !errors.Is(err, ErrOrderUnknown) {
			t.Fatalf("DerivePosition(%q): expected ErrOrderUnknown, got %v", p, err)
		}
	}
}
