package services

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Shubham-7300/Portfolio-Backend/internal/apperr"
)

// SessionCookieName is the cookie the dashboard sends on every request.
const SessionCookieName = "token"

type sessionClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
}

// TokenService issues and verifies stateless session tokens and carries them
// in a cookie. There is no server-side session record: logout is Clear.
type TokenService struct {
	secret     []byte
	ttl        time.Duration
	cookieDays int
}

func NewTokenService(secret string, ttl time.Duration, cookieDays int) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl, cookieDays: cookieDays}
}

// Issue signs a token bound to userID, expiring after the configured TTL.
func (s *TokenService) Issue(userID string) (string, error) {
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature and expiry and returns the bound user id. Expired
// tokens are reported separately from malformed or tampered ones because the
// client shows different messages for the two.
func (s *TokenService) Verify(tokenString string) (string, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apperr.Wrap(apperr.KindSessionExpired, "Session expired! Please log in again.", err)
		}
		return "", apperr.Wrap(apperr.KindInvalidToken, "Invalid token! Please log in again.", err)
	}
	if !token.Valid || claims.UserID == "" {
		return "", apperr.New(apperr.KindInvalidToken, "Invalid token! Please log in again.")
	}
	return claims.UserID, nil
}

// Attach sets the session cookie. httpOnly blocks script access to the token;
// SameSite=None with Secure lets the dashboard and portfolio, which live on
// different origins, send it cross-site over TLS only.
func (s *TokenService) Attach(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(time.Duration(s.cookieDays) * 24 * time.Hour),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

// Clear expires the session cookie immediately. Since tokens are stateless
// this is the entire logout operation.
func (s *TokenService) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now(),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}
