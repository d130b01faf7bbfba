package validate

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/TheRipper284/mh/internal/domain"
)

var (
	reID   = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reDate = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}$`)
)

// ID validates an opaque store identity (category/product/order ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Table parses a table number and enforces the 1..13 range.
func Table(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < domain.MinTable || n > domain.MaxTable {
		return 0, false
	}
	return n, true
}

// Qty parses a quantity, defaulting to 1 and clamping abuse.
func Qty(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	if n > 50 {
		return 50
	}
	return n
}

// QtyOrZero parses a quantity without the minimum-of-1 floor; zero and
// negatives pass through so cart updates can mean "remove".
func QtyOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	if n > 50 {
		return 50
	}
	return n
}

// Name validates a displayable category/product name.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 80 {
		return "", false
	}
	return s, true
}

// Price parses an optional non-negative price from a form field.
// Empty input means unset (nil).
func Price(s string) (*float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return nil, false
	}
	return &f, true
}

// Amount parses an optional non-negative integer (ml, grams, display order).
func Amount(s string) (*int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil, false
	}
	return &n, true
}

// Size validates a pizza size selector; empty is allowed (no size).
func Size(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", true
	}
	return s, domain.ValidSize(s)
}

// Date validates a YYYY-MM-DD report date.
func Date(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reDate.MatchString(s)
}
