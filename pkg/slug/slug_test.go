package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/rosterkit/pkg/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"My Hockey Club!", "my-hockey-club"},
		{"  Test   Club  ", "test-club"},
		{"Riverside", "riverside"},
		{"North-End Nighthawks", "north-end-nighthawks"},
		{"Crème Brûlée FC", "crème-brûlée-fc"},
		{"...", ""},
		{"", ""},
		{"2024 Winter League", "2024-winter-league"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, slug.Make(tc.in), "input %q", tc.in)
	}
}

func TestMakeOptions(t *testing.T) {
	t.Parallel()

	t.Run("max length truncates", func(t *testing.T) {
		t.Parallel()
		got := slug.Make("a very long organization name", slug.MaxLength(10))
		assert.LessOrEqual(t, len([]rune(got)), 10)
		assert.Equal(t, "a-very-lon", got)
	})

	t.Run("custom separator", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "my_club", slug.Make("My Club", slug.Separator("_")))
	})
}
