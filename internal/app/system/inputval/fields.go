package inputval

import (
	"net/mail"
	"net/url"
	"strings"

	"github.com/YatharthSanghavi/wt-project/internal/app/policy/accesspolicy"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IsValidEmail accepts a bare addr-spec (no display name). Single-label
// domains such as "localhost" are allowed.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " \t<>") {
		return false
	}
	at := strings.LastIndex(s, "@")
	if at < 1 || at == len(s)-1 {
		return false
	}
	if !cleanDots(s[:at]) || !cleanDots(s[at+1:]) {
		return false
	}
	a, err := mail.ParseAddress(s)
	return err == nil && a.Name == "" && a.Address == s
}

func cleanDots(part string) bool {
	return !strings.HasPrefix(part, ".") && !strings.HasSuffix(part, ".") && !strings.Contains(part, "..")
}

// IsValidObjectID reports whether s (trimmed) is a 24-character hex id.
func IsValidObjectID(s string) bool {
	_, err := primitive.ObjectIDFromHex(strings.TrimSpace(s))
	return err == nil
}

func IsValidHTTPURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// IsValidRole reports whether s names one of the assignable roles.
func IsValidRole(s string) bool {
	r := accesspolicy.Role(strings.TrimSpace(s))
	return r.Valid()
}

// NormalizeEmail trims and lowercases an address for storage and lookup.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
