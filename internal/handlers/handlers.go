// Package handlers orchestrates routes: fetch reference data, call the
// repositories, then render a view or redirect with a one-shot notice.
// Business rules live in the validate, token and view packages.
package handlers

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mwalcott/motorlot/internal/events"
	"github.com/mwalcott/motorlot/internal/middleware"
)

func csrfToken(c echo.Context) string {
	s, _ := c.Get(middleware.CtxCSRF).(string)
	return s
}

func paramUint(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	return uint(v), err
}

func formUint(c echo.Context, name string) uint {
	v, _ := strconv.ParseUint(c.FormValue(name), 10, 32)
	return uint(v)
}

func formInt(c echo.Context, name string) int {
	v, _ := strconv.Atoi(c.FormValue(name))
	return v
}

func formFloat(c echo.Context, name string) float64 {
	v, _ := strconv.ParseFloat(c.FormValue(name), 64)
	return v
}

func paginate(page, size int) (from, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 10
	}
	return (page - 1) * size, size
}

// publish sends a domain event without letting broker trouble surface to
// the client.
func publish(ctx context.Context, log *slog.Logger, p *events.Producer, topic, key string, event map[string]any) {
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(pubCtx, topic, key, event); err != nil {
		log.Error("kafka publish failed", "topic", topic, "error", err)
	}
}
