package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/wishlist/internal/model"
)

func useMono(t *testing.T) {
	t.Helper()
	SetTheme("mono")
	t.Cleanup(func() { SetTheme("classic") })
}

func TestListLinesEmptyShowsPlaceholder(t *testing.T) {
	useMono(t)
	lines := ListLines(nil)
	assert.Equal(t, "Wishlist  0 wishes", lines[0])
	assert.Contains(t, lines, "<3 "+EmptyTitle)
	assert.Contains(t, lines, EmptyMessage)
}

func TestListLinesNumbersWishesInOrder(t *testing.T) {
	useMono(t)
	lines := ListLines([]model.Wish{model.NewWish("Buy a new iPhone"), model.NewWish("Travel to Europe")})
	require.Len(t, lines, 4)
	assert.Equal(t, "Wishlist  2 wishes", lines[0])
	assert.Equal(t, " 1. - Buy a new iPhone", lines[2])
	assert.Equal(t, " 2. - Travel to Europe", lines[3])
}

func TestPanelFramesLines(t *testing.T) {
	useMono(t)
	var buf bytes.Buffer
	Panel(&buf, []string{"ab", "abcd"})

	got := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, []string{
		"+------+",
		"| ab   |",
		"| abcd |",
		"+------+",
	}, got)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcdefg...", Truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "tiny", Truncate("tiny", 2))
}

func TestPrinter(t *testing.T) {
	useMono(t)
	var out, errOut bytes.Buffer
	p := Printer{Out: &out, Err: &errOut}

	p.OK("added")
	p.Fail("add: empty title")
	p.Hint("Hint: run `wishlist ls`")

	assert.Equal(t, "✔ added\n", out.String())
	assert.Equal(t, "✖ add: empty title\nHint: run `wishlist ls`\n", errOut.String())
}

func TestSetThemeFallsBackToClassic(t *testing.T) {
	SetTheme("unknown")
	assert.Equal(t, "classic", Current().Name)
	SetTheme("NEON")
	assert.Equal(t, "neon", Current().Name)
	SetTheme("classic")
}

func TestColorDisabledWhenNotForced(t *testing.T) {
	SetColorForcing(true, false)
	t.Cleanup(func() { SetColorForcing(false, false) })
	assert.Equal(t, "\033[31mx\033[0m", C(fgRed, "x"))

	SetColorForcing(false, true)
	assert.Equal(t, "x", C(fgRed, "x"))
}
