package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mwalcott/motorlot/internal/view"
)

type BaseHandler struct {
	View *view.Renderer
}

func (h *BaseHandler) Home(c echo.Context) error {
	return h.View.Render(c, http.StatusOK, "Home", view.Welcome)
}
