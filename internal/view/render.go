package view

import (
	"bytes"
	"context"
	"html/template"
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/mwalcott/motorlot/internal/flash"
	"github.com/mwalcott/motorlot/internal/logging"
	"github.com/mwalcott/motorlot/internal/middleware"
	"github.com/mwalcott/motorlot/internal/repo"
	"github.com/mwalcott/motorlot/internal/token"
)

// Renderer wraps every fragment into the shared layout. The navigation
// source is an injected repository, not package state.
type Renderer struct {
	Inv   *repo.InventoryRepo
	Flash *flash.Store
	Log   *slog.Logger
}

type Page struct {
	Title    string
	Nav      template.HTML
	Content  template.HTML
	Notices  []string
	LoggedIn bool
	Account  *token.AccountData
}

var layoutTpl = template.Must(template.New("layout").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} | Motor Lot</title>
<link rel="stylesheet" href="/css/styles.css">
</head>
<body>
<div id="wrapper">
<header id="top-header">
<span class="siteName"><a href="/" title="Return to home page">Motor Lot</a></span>
<div id="tools">
{{- if .LoggedIn}}
<a title="Account management" href="/account/">Welcome {{.Account.FirstName}}</a>
<a title="Log out" href="/account/logout">Logout</a>
{{- else}}
<a title="Click to log in" href="/account/login">My Account</a>
{{- end}}
</div>
</header>
<nav>{{.Nav}}</nav>
{{- range .Notices}}
<p class="notice">{{.}}</p>
{{- end}}
<main>
<h1>{{.Title}}</h1>
{{.Content}}
</main>
<footer><hr><p>&copy; Motor Lot</p></footer>
</div>
</body>
</html>`))

// Nav builds the menu fragment, falling back to a static Home-only list so
// rendering never fails on a navigation fetch error.
func (r *Renderer) Nav(ctx context.Context) template.HTML {
	classifications, err := r.Inv.Classifications(ctx)
	if err != nil {
		r.logger(ctx).Error("nav fetch failed", "error", err)
		return FallbackNav
	}
	nav, err := Nav(classifications)
	if err != nil {
		r.logger(ctx).Error("nav render failed", "error", err)
		return FallbackNav
	}
	return nav
}

func (r *Renderer) Render(c echo.Context, status int, title string, content template.HTML) error {
	p := Page{
		Title:    title,
		Nav:      r.Nav(c.Request().Context()),
		Content:  content,
		LoggedIn: middleware.LoggedIn(c),
		Account:  middleware.Account(c),
	}
	if r.Flash != nil {
		p.Notices = r.Flash.Pop(c)
	}

	var buf bytes.Buffer
	if err := layoutTpl.Execute(&buf, p); err != nil {
		return err
	}
	return c.HTMLBlob(status, buf.Bytes())
}

func (r *Renderer) logger(ctx context.Context) *slog.Logger {
	if r.Log != nil {
		return r.Log
	}
	return logging.FromContext(ctx)
}
