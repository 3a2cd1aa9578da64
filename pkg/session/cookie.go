package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the cookie carrying the session token
const CookieName = "session"

// ContextUserKey is where the auth middleware stores the user id on the
// request context for handlers downstream
const ContextUserKey = "session_user"

// Lifetime is how long a login lasts
const Lifetime = 7 * 24 * time.Hour

// Token is the value object a session cookie decodes to. The cookie is the
// session - there is no server-side table, and nothing here is revalidated
// against the user store on each request.
type Token struct {
	UserID string
	Email  string
	Name   string
}

type claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// Codec signs and verifies session cookies
type Codec struct {
	secret []byte
}

// NewCodec creates a codec with the HMAC signing key
func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Issue writes a signed session cookie for the user
func (c *Codec) Issue(w http.ResponseWriter, tok Token) error {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: tok.Email,
		Name:  tok.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   tok.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(Lifetime)),
		},
	})

	signed, err := t.SignedString(c.secret)
	if err != nil {
		return fmt.Errorf("signing session token: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(Lifetime.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear removes the session cookie
func (c *Codec) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Decode verifies the cookie from a request and returns the session token
func (c *Codec) Decode(r *http.Request) (Token, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return Token{}, errors.New("no session cookie")
	}

	var cl claims
	_, err = jwt.ParseWithClaims(cookie.Value, &cl, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return Token{}, fmt.Errorf("invalid session token: %w", err)
	}

	return Token{UserID: cl.Subject, Email: cl.Email, Name: cl.Name}, nil
}
