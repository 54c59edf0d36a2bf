package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	csrfCookieName = "XSRF-TOKEN"
	csrfFormField  = "csrf_token"

	// CtxCSRF exposes the token to form-rendering handlers.
	CtxCSRF = "csrf_token"
)

// CSRF is a double-submit cookie check for the management forms. Safe
// methods pass through; mutating requests must echo the cookie token in the
// csrf_token form field.
func CSRF(secure bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			tok := readCookie(req, csrfCookieName)
			if tok == "" {
				var err error
				tok, err = newToken(32)
				if err != nil {
					return echo.NewHTTPError(http.StatusInternalServerError, "failed to create CSRF token")
				}
			}
			setCSRFCookie(c, tok, secure)
			c.Set(CtxCSRF, tok)

			switch req.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			provided := ""
			if err := req.ParseForm(); err == nil {
				provided = req.FormValue(csrfFormField)
			}
			if subtle.ConstantTimeCompare([]byte(tok), []byte(provided)) != 1 {
				return echo.NewHTTPError(http.StatusForbidden, "invalid CSRF token")
			}

			return next(c)
		}
	}
}

func newToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func setCSRFCookie(c echo.Context, tok string, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     csrfCookieName,
		Value:    tok,
		Path:     "/",
		Secure:   secure,
		HttpOnly: false,
		MaxAge:   24 * 60 * 60,
		SameSite: http.SameSiteLaxMode,
	})
}

func readCookie(req *http.Request, name string) string {
	ck, err := req.Cookie(name)
	if err != nil {
		return ""
	}
	return ck.Value
}
