package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mwalcott/motorlot/internal/repo"
	"github.com/mwalcott/motorlot/internal/view"
)

// HTTPErrorHandler renders every unhandled failure through the shared error
// view. Clients only ever see a generic message; the detail stays in the
// server log.
func HTTPErrorHandler(v *view.Renderer, log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
		}
		if errors.Is(err, repo.ErrNotFound) {
			code = http.StatusNotFound
		}

		title := "500 - Server Error"
		message := "An unexpected error occurred."
		if code == http.StatusNotFound {
			title = "404 - Page Not Found"
			message = "I'm sorry, we couldn't find that page."
		}

		log.Error("request failed",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", code,
			"error", err,
		)

		if rerr := v.Render(c, code, title, view.Notice(message)); rerr != nil {
			log.Error("error page render failed", "error", rerr)
			_ = c.NoContent(code)
		}
	}
}
