package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Wish is the domain model for a wishlist entry.
// The ID is assigned once at creation and never changes.
type Wish struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

// NewWish builds a wish with a fresh random ID. The title is stored as given;
// callers normalize it first.
func NewWish(title string) Wish {
	return Wish{ID: uuid.New(), Title: title}
}

// NormalizeTitle trims surrounding whitespace and reports whether anything is left.
func NormalizeTitle(s string) (string, bool) {
	t := strings.TrimSpace(s)
	return t, t != ""
}

// ParseID parses the textual form of a wish ID.
func ParseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse wish id: %w", err)
	}
	return id, nil
}

// Titles returns the titles of ws in order.
func Titles(ws []Wish) []string {
	out := make([]string, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.Title)
	}
	return out
}

// CountLabel renders n as "1 wish" / "3 wishes".
func CountLabel(n int) string {
	if n == 1 {
		return "1 wish"
	}
	return fmt.Sprintf("%d wishes", n)
}
