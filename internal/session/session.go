// Package session issues and verifies the signed cookie that scopes an HTTP
// client to its own assessment.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName is the session cookie.
const CookieName = "shieldplan_session"

const issuer = "shieldplan"

// ErrInvalid is returned for missing, expired or tampered tokens.
var ErrInvalid = errors.New("invalid session token")

// Manager issues signed JWTs whose subject is a session id.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager creates a manager. An empty secret is replaced by a random one,
// which invalidates sessions across restarts.
func NewManager(secret string, ttl time.Duration) (*Manager, error) {
	key := []byte(secret)
	if len(key) == 0 {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("generating session secret: %w", err)
		}
		key = []byte(hex.EncodeToString(buf))
	}
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &Manager{secret: key, ttl: ttl, now: time.Now}, nil
}

// Issue mints a token for sessionID.
func (m *Manager) Issue(sessionID string) (string, error) {
	now := m.now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify returns the session id carried by token.
func (m *Manager) Verify(token string) (string, error) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid {
		return "", fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", fmt.Errorf("%w: subject is not a session id", ErrInvalid)
	}
	return claims.Subject, nil
}

// Resolve returns the session id from the request cookie, or starts a new
// session and sets the cookie on w. fresh is true for new sessions.
func (m *Manager) Resolve(w http.ResponseWriter, r *http.Request) (id string, fresh bool, err error) {
	if c, cerr := r.Cookie(CookieName); cerr == nil {
		if id, verr := m.Verify(c.Value); verr == nil {
			return id, false, nil
		}
	}

	id = uuid.NewString()
	token, err := m.Issue(id)
	if err != nil {
		return "", false, fmt.Errorf("issuing session token: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  m.now().Add(m.ttl),
	})
	return id, true, nil
}
