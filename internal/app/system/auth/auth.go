// Package auth issues and verifies bearer tokens and carries the signed-in
// user through the request context.
//
// Tokens are securecookie values (HMAC signed, optionally AES encrypted)
// holding the user id. The role is never trusted from the token: LoadUser
// re-reads the user on every request so role changes apply immediately.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/YatharthSanghavi/wt-project/internal/app/system/respond"
	"github.com/gorilla/securecookie"
	"go.uber.org/zap"
)

const tokenName = "frolic-token"

// User is what handlers see of the caller.
type User struct {
	ID    string
	Name  string
	Email string
	Role  string
}

// Claims is the token payload.
type Claims struct {
	UserID   string `json:"uid"`
	IssuedAt int64  `json:"iat"`
}

// UserFetcher loads the current state of a user. It returns (nil, nil) when
// the user no longer exists.
type UserFetcher interface {
	FetchUser(ctx context.Context, id string) (*User, error)
}

var (
	ErrNoToken      = errors.New("no token")
	ErrInvalidToken = errors.New("invalid token")
)

type ctxKey string

const (
	currentUserKey ctxKey = "currentUser"
	authErrKey     ctxKey = "authError"
)

// TokenManager encodes and decodes tokens.
type TokenManager struct {
	codec   *securecookie.SecureCookie
	ttl     time.Duration
	fetcher UserFetcher
	log     *zap.Logger
}

// NewTokenManager builds a manager. hashKey must be at least 32 bytes;
// blockKey may be empty (sign only) or 16, 24 or 32 bytes.
func NewTokenManager(hashKey, blockKey string, ttl time.Duration, logger *zap.Logger) (*TokenManager, error) {
	if len(hashKey) < 32 {
		return nil, fmt.Errorf("token hash key must be at least 32 bytes, got %d", len(hashKey))
	}
	var block []byte
	switch len(blockKey) {
	case 0:
		logger.Warn("token block key is empty; tokens are signed but not encrypted")
	case 16, 24, 32:
		block = []byte(blockKey)
	default:
		return nil, fmt.Errorf("token block key must be 16, 24 or 32 bytes, got %d", len(blockKey))
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	codec := securecookie.New([]byte(hashKey), block)
	codec.MaxAge(int(ttl.Seconds()))
	codec.MaxLength(4096)
	codec.SetSerializer(securecookie.JSONEncoder{})

	return &TokenManager{codec: codec, ttl: ttl, log: logger}, nil
}

// SetUserFetcher installs the lookup LoadUser uses.
func (m *TokenManager) SetUserFetcher(f UserFetcher) {
	m.fetcher = f
}

func (m *TokenManager) TTL() time.Duration { return m.ttl }

// Issue returns a token for userID.
func (m *TokenManager) Issue(userID string) (string, error) {
	return m.codec.Encode(tokenName, Claims{UserID: userID, IssuedAt: time.Now().Unix()})
}

// Parse verifies token and returns its claims. Expired or tampered tokens
// yield ErrInvalidToken.
func (m *TokenManager) Parse(token string) (Claims, error) {
	var c Claims
	if err := m.codec.Decode(tokenName, token, &c); err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if c.UserID == "" {
		return Claims{}, ErrInvalidToken
	}
	return c, nil
}

// BearerToken extracts the token from "Authorization: Bearer <token>".
func BearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}

// LoadUser puts the caller into the request context when a valid token is
// present. Requests without a usable token continue anonymously; the reason
// is kept so RequireSignedIn can report it.
func (m *TokenManager) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := BearerToken(r)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.Parse(raw)
		if err != nil {
			m.log.Debug("rejected bearer token", zap.Error(err))
			next.ServeHTTP(w, withAuthErr(r, "Not authorized, token failed"))
			return
		}

		if m.fetcher == nil {
			next.ServeHTTP(w, withUser(r, &User{ID: claims.UserID}))
			return
		}

		u, err := m.fetcher.FetchUser(r.Context(), claims.UserID)
		if err != nil {
			m.log.Error("user fetch failed", zap.String("user_id", claims.UserID), zap.Error(err))
			respond.Fail(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		if u == nil {
			next.ServeHTTP(w, withAuthErr(r, "Not authorized, user not found"))
			return
		}
		next.ServeHTTP(w, withUser(r, u))
	})
}

// CurrentUser returns the caller placed by LoadUser.
func CurrentUser(r *http.Request) (*User, bool) {
	u, ok := r.Context().Value(currentUserKey).(*User)
	return u, ok && u != nil
}

// RequireSignedIn answers 401 when no user is in context.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}
		msg, _ := r.Context().Value(authErrKey).(string)
		if msg == "" {
			msg = "Not authorized, no token"
		}
		respond.Fail(w, http.StatusUnauthorized, msg)
	})
}

// RequireRole answers 401 without a user and 403 when the caller's role is
// not listed.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, _ := CurrentUser(r)
			if _, ok := set[strings.ToLower(u.Role)]; !ok {
				respond.Fail(w, http.StatusForbidden, fmt.Sprintf("User role '%s' is not authorized to access this route", u.Role))
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}

// WithTestUser attaches u to r. Tests use it in place of a real token.
func WithTestUser(r *http.Request, u *User) *http.Request {
	return withUser(r, u)
}

func withUser(r *http.Request, u *User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

func withAuthErr(r *http.Request, msg string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), authErrKey, msg))
}
