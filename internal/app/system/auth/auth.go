// Package auth implements stateless JWT session handling.
//
// A signed-in user carries an HS256 token in the access_token cookie
// (or an Authorization: Bearer header for non-browser clients). The
// token embeds the registration number and email; LoadSessionUser
// resolves it to a full SessionUser via the configured UserFetcher so
// handlers always see the current account, not a stale snapshot.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/campushub/campushub/internal/app/system/apierr"
)

// CookieName is the session cookie carrying the JWT.
const CookieName = "access_token"

// Claims is the JWT payload. RegNo is the primary identity key.
type Claims struct {
	RegNo string `json:"regno"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// SessionUser is the resolved account injected into r.Context().
type SessionUser struct {
	ID    primitive.ObjectID
	Name  string
	Email string
	RegNo string
}

// UserFetcher resolves a registration number to the current account.
// Implemented by the users store; declared here so auth does not
// depend on storage.
type UserFetcher interface {
	ByRegNo(ctx context.Context, regno string) (*SessionUser, error)
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// TokenManager issues and verifies session tokens and manages the
// session cookie.
type TokenManager struct {
	secret     []byte
	ttl        time.Duration
	cookieName string
	domain     string
	secure     bool

	fetcher UserFetcher
	log     *zap.Logger
}

// NewTokenManager builds a TokenManager. The secret must be at least
// 32 bytes; shorter keys only get a warning so dev setups still run.
func NewTokenManager(secret string, ttl time.Duration, domain string, secure bool, log *zap.Logger) (*TokenManager, error) {
	if secret == "" {
		return nil, fmt.Errorf("token secret is empty; provide 32+ random chars")
	}
	if len(secret) < 32 && log != nil {
		log.Warn("token secret is short; 32+ chars recommended",
			zap.Int("length", len(secret)))
	}
	return &TokenManager{
		secret:     []byte(secret),
		ttl:        ttl,
		cookieName: CookieName,
		domain:     domain,
		secure:     secure,
		log:        log,
	}, nil
}

// SetUserFetcher wires the store-backed resolver. Called once during
// startup, before the handler tree is built.
func (tm *TokenManager) SetUserFetcher(f UserFetcher) { tm.fetcher = f }

// Issue signs a token for the given identity.
func (tm *TokenManager) Issue(regno, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegNo: regno,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(tm.secret)
}

// Verify parses and validates a token string, returning its claims.
func (tm *TokenManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// SetCookie writes the session cookie on a successful login.
func (tm *TokenManager) SetCookie(w http.ResponseWriter, token string) {
	sameSite := http.SameSiteLaxMode
	if tm.secure {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     tm.cookieName,
		Value:    token,
		Path:     "/",
		Domain:   tm.domain,
		MaxAge:   int(tm.ttl.Seconds()),
		Secure:   tm.secure,
		HttpOnly: true,
		SameSite: sameSite,
	})
}

// ClearCookie expires the session cookie on logout.
func (tm *TokenManager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     tm.cookieName,
		Value:    "",
		Path:     "/",
		Domain:   tm.domain,
		MaxAge:   -1,
		Secure:   tm.secure,
		HttpOnly: true,
	})
}

// TokenFromRequest extracts the raw token: cookie first, then the
// Authorization header.
func (tm *TokenManager) TokenFromRequest(r *http.Request) (string, bool) {
	if c, err := r.Cookie(tm.cookieName); err == nil && c.Value != "" {
		return c.Value, true
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer "), true
	}
	return "", false
}

// CurrentUser returns the session user and a found flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// LoadSessionUser verifies the request token, resolves the account,
// and injects it into context. Requests without a valid token pass
// through unauthenticated; RequireSignedIn decides whether that is an
// error.
func (tm *TokenManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := tm.TokenFromRequest(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := tm.Verify(raw)
		if err != nil {
			if tm.log != nil {
				tm.log.Debug("rejected session token", zap.Error(err))
			}
			next.ServeHTTP(w, r)
			return
		}

		if tm.fetcher == nil {
			next.ServeHTTP(w, r)
			return
		}
		u, err := tm.fetcher.ByRegNo(r.Context(), claims.RegNo)
		if err != nil || u == nil {
			// Token is valid but the account is gone; treat as signed out.
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, withUser(r, u))
	})
}

// RequireSignedIn rejects requests without a session user.
func (tm *TokenManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			apierr.Write(w, tm.log, apierr.Unauthenticated("not_signed_in", "sign in required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithTestUser injects a session user directly. Test helper only.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}
