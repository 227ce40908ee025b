package validate

import (
	"regexp"
	"strings"
)

var (
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

// ID validates an opaque resource identifier (user/category/product/order ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 100 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 50 {
		return "", false
	}
	return s, true
}

// Color validates an optional hex color; the empty string is allowed.
func Color(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	return s, reColor.MatchString(s)
}

// Quantity requires a strictly positive line quantity.
func Quantity(n int) bool { return n >= 1 }

// Price rejects negative amounts; zero is a valid price.
func Price(p float64) bool { return p >= 0 }

// Stock bounds countInStock to a single unsigned byte, matching the stored range.
func Stock(n int) bool { return n >= 0 && n <= 255 }

// IDList splits a comma-separated id list, validating every element.
// Empty elements (as in "a,,b" or a trailing comma) fail the whole list.
func IDList(s string) ([]string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		id, ok := ID(p)
		if !ok {
			return nil, false
		}
		out = append(out, id)
	}
	return out, true
}

// Password enforces a length window plus character-class mix for registration.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 72 {
		return false
	}
	var hasLower, hasUpper, hasDigit bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		}
	}
	return hasLower && hasUpper && hasDigit
}
