package token

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mwalcott/motorlot/internal/models"
)

const (
	CookieName = "jwt"
	TTL        = 3600 * time.Second
)

// AccountData is the non-secret account snapshot carried inside a token.
// The password hash must never travel here.
type AccountData struct {
	ID        uint
	FirstName string
	LastName  string
	Role      string
}

func (a AccountData) IsStaff() bool {
	return a.Role == models.RoleEmployee || a.Role == models.RoleAdmin
}

func Sign(acct models.Account, secret []byte, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":        float64(acct.ID),
		"first_name": acct.FirstName,
		"last_name":  acct.LastName,
		"role":       acct.Role,
		"exp":        now.Add(TTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

func Verify(raw string, secret []byte, now time.Time) (*AccountData, error) {
	t, err := jwt.Parse(raw,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signature method: %v", t.Header["alg"])
			}
			return secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil || !t.Valid {
		return nil, fmt.Errorf("invalid access token: %w", err)
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("cannot parse claims")
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return nil, fmt.Errorf("missing sub claim")
	}
	role, ok := claims["role"].(string)
	if !ok {
		return nil, fmt.Errorf("missing role claim")
	}

	data := &AccountData{ID: uint(sub), Role: role}
	if v, ok := claims["first_name"].(string); ok {
		data.FirstName = v
	}
	if v, ok := claims["last_name"].(string); ok {
		data.LastName = v
	}
	return data, nil
}

// NewCookie wraps a signed token for delivery. Secure is only set outside
// local environments so plain-HTTP testing keeps working.
func NewCookie(value string, secure bool, now time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Expires:  now.Add(TTL),
		MaxAge:   int(TTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func ExpiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
