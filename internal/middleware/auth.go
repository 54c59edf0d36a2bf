package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mwalcott/motorlot/internal/flash"
	"github.com/mwalcott/motorlot/internal/token"
)

// Echo context keys set by CheckToken.
const (
	CtxAccount  = "account"
	CtxLoggedIn = "loggedIn"
)

type JWT struct {
	Secret []byte
	Flash  *flash.Store
}

// Account returns the authenticated snapshot, or nil for anonymous requests.
func Account(c echo.Context) *token.AccountData {
	if a, ok := c.Get(CtxAccount).(*token.AccountData); ok {
		return a
	}
	return nil
}

func LoggedIn(c echo.Context) bool {
	v, ok := c.Get(CtxLoggedIn).(bool)
	return ok && v
}

// CheckToken runs on every request. A missing cookie means anonymous; an
// invalid or expired one is cleared with a notice and the request continues
// anonymously. Verification never aborts the request.
func (m *JWT) CheckToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(token.CookieName)
		if err != nil {
			c.Set(CtxLoggedIn, false)
			return next(c)
		}

		data, err := token.Verify(cookie.Value, m.Secret, time.Now())
		if err != nil {
			c.SetCookie(token.ExpiredCookie())
			if m.Flash != nil {
				m.Flash.Add(c, "Your session has expired. Please log in again.")
			}
			c.Set(CtxLoggedIn, false)
			return next(c)
		}

		c.Set(CtxAccount, data)
		c.Set(CtxLoggedIn, true)
		return next(c)
	}
}

// RequireLogin rejects anonymous requests before the handler runs.
func (m *JWT) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !LoggedIn(c) {
			if m.Flash != nil {
				m.Flash.Add(c, "Please log in.")
			}
			return c.Redirect(http.StatusSeeOther, "/account/login")
		}
		return next(c)
	}
}

// RequireStaff gates inventory management to employee and admin accounts.
func (m *JWT) RequireStaff(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		acct := Account(c)
		if acct == nil {
			if m.Flash != nil {
				m.Flash.Add(c, "Please log in.")
			}
			return c.Redirect(http.StatusSeeOther, "/account/login")
		}
		if !acct.IsStaff() {
			if m.Flash != nil {
				m.Flash.Add(c, "You are not authorized to manage inventory.")
			}
			return c.Redirect(http.StatusSeeOther, "/account/login")
		}
		return next(c)
	}
}
