// Package flash carries one-shot notice messages between a redirect and the
// next rendered page, backed by a signed session cookie.
package flash

import (
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
)

const sessionName = "sessionId"

type Store struct {
	store *sessions.CookieStore
}

func NewStore(secret []byte, secure bool) *Store {
	s := sessions.NewCookieStore(secret)
	s.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Store{store: s}
}

func (s *Store) Add(c echo.Context, message string) {
	sess, _ := s.store.Get(c.Request(), sessionName)
	sess.AddFlash(message, "notice")
	_ = sess.Save(c.Request(), c.Response())
}

// Pop returns the pending notices and clears them from the session.
func (s *Store) Pop(c echo.Context) []string {
	sess, _ := s.store.Get(c.Request(), sessionName)
	raw := sess.Flashes("notice")
	if len(raw) > 0 {
		_ = sess.Save(c.Request(), c.Response())
	}
	out := make([]string, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(string); ok {
			out = append(out, msg)
		}
	}
	return out
}
