package telegram

import (
	"fmt"
	"strings"
)

var linkPrefixes = []string{"https://t.me/", "http://t.me/", "t.me/", "https://telegram.me/", "telegram.me/", "@"}

// ExtractUsername достаёт username из ссылки https://t.me/x, t.me/x, @x или x.
func ExtractUsername(identifier string) (string, error) {
	s := strings.TrimSpace(identifier)
	for _, p := range linkPrefixes {
		if len(s) >= len(p) && strings.EqualFold(s[:len(p)], p) {
			s = s[len(p):]
			break
		}
	}
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	if !validUsername(s) {
		return "", fmt.Errorf("%q: %w", identifier, ErrInvalidIdentifier)
	}
	return s, nil
}

// validUsername: 4–32 символа, латиница, цифры и подчёркивание, начинается с буквы.
func validUsername(s string) bool {
	if len(s) < 4 || len(s) > 32 {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '_'):
		default:
			return false
		}
	}
	return true
}
