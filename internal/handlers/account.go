package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mwalcott/motorlot/internal/events"
	"github.com/mwalcott/motorlot/internal/flash"
	"github.com/mwalcott/motorlot/internal/hash"
	"github.com/mwalcott/motorlot/internal/middleware"
	"github.com/mwalcott/motorlot/internal/models"
	"github.com/mwalcott/motorlot/internal/repo"
	"github.com/mwalcott/motorlot/internal/token"
	"github.com/mwalcott/motorlot/internal/validate"
	"github.com/mwalcott/motorlot/internal/view"
)

type AccountHandler struct {
	Repo     *repo.AccountRepo
	Secret   []byte
	Secure   bool
	Flash    *flash.Store
	View     *view.Renderer
	Producer *events.Producer
	Log      *slog.Logger
}

func (h *AccountHandler) LoginPage(c echo.Context) error {
	content, err := view.LoginForm(view.LoginData{CSRF: csrfToken(c)})
	if err != nil {
		return err
	}
	return h.View.Render(c, http.StatusOK, "Login", content)
}

func (h *AccountHandler) RegisterPage(c echo.Context) error {
	content, err := view.RegisterForm(view.RegisterData{CSRF: csrfToken(c)})
	if err != nil {
		return err
	}
	return h.View.Render(c, http.StatusOK, "Register", content)
}

func (h *AccountHandler) registerData(c echo.Context, errs []string) view.RegisterData {
	return view.RegisterData{
		FirstName: c.FormValue("account_firstname"),
		LastName:  c.FormValue("account_lastname"),
		Email:     c.FormValue("account_email"),
		Errors:    errs,
		CSRF:      csrfToken(c),
	}
}

func (h *AccountHandler) Register(c echo.Context) error {
	if errs := validate.RegistrationRules().Validate(c.FormValue); len(errs) > 0 {
		content, err := view.RegisterForm(h.registerData(c, errs))
		if err != nil {
			return err
		}
		return h.View.Render(c, http.StatusBadRequest, "Register", content)
	}

	passwordHash, err := hash.HashPassword(c.FormValue("account_password"))
	if err != nil {
		h.Log.Error("password hash failed", "error", err)
		h.Flash.Add(c, "Sorry, there was an error processing the registration.")
		content, rerr := view.RegisterForm(h.registerData(c, nil))
		if rerr != nil {
			return rerr
		}
		return h.View.Render(c, http.StatusInternalServerError, "Register", content)
	}

	acct := models.Account{
		FirstName:    c.FormValue("account_firstname"),
		LastName:     c.FormValue("account_lastname"),
		Email:        c.FormValue("account_email"),
		PasswordHash: passwordHash,
		Role:         models.RoleCustomer,
	}

	ctx := c.Request().Context()
	taken, err := h.Repo.EmailTaken(ctx, acct.Email)
	if err != nil {
		return err
	}
	if taken {
		h.Flash.Add(c, "Sorry, the registration failed.")
		content, rerr := view.RegisterForm(h.registerData(c, nil))
		if rerr != nil {
			return rerr
		}
		return h.View.Render(c, http.StatusInternalServerError, "Register", content)
	}

	if err := h.Repo.Create(ctx, &acct); err != nil {
		h.Log.Error("account create failed", "error", err)
		h.Flash.Add(c, "Sorry, the registration failed.")
		content, rerr := view.RegisterForm(h.registerData(c, nil))
		if rerr != nil {
			return rerr
		}
		return h.View.Render(c, http.StatusInternalServerError, "Register", content)
	}

	publish(ctx, h.Log, h.Producer, events.TopicAccount, fmt.Sprint(acct.ID), map[string]any{
		"type":       "account_registered",
		"account_id": acct.ID,
		"email":      acct.Email,
	})

	h.Flash.Add(c, fmt.Sprintf("Congratulations, you're registered %s. Please log in.", acct.FirstName))
	content, err := view.LoginForm(view.LoginData{Email: acct.Email, CSRF: csrfToken(c)})
	if err != nil {
		return err
	}
	return h.View.Render(c, http.StatusCreated, "Login", content)
}

// loginFailed renders the same notice and status for a missing account and
// a wrong password, so responses cannot be used to enumerate emails.
func (h *AccountHandler) loginFailed(c echo.Context) error {
	h.Flash.Add(c, "Please check your credentials and try again.")
	content, err := view.LoginForm(view.LoginData{
		Email: c.FormValue("account_email"),
		CSRF:  csrfToken(c),
	})
	if err != nil {
		return err
	}
	return h.View.Render(c, http.StatusUnauthorized, "Login", content)
}

func (h *AccountHandler) Login(c echo.Context) error {
	if errs := validate.LoginRules().Validate(c.FormValue); len(errs) > 0 {
		content, err := view.LoginForm(view.LoginData{
			Email:  c.FormValue("account_email"),
			Errors: errs,
			CSRF:   csrfToken(c),
		})
		if err != nil {
			return err
		}
		return h.View.Render(c, http.StatusBadRequest, "Login", content)
	}

	ctx := c.Request().Context()
	acct, err := h.Repo.ByEmail(ctx, c.FormValue("account_email"))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return h.loginFailed(c)
		}
		return err
	}

	if !hash.CheckPassword(acct.PasswordHash, c.FormValue("account_password")) {
		return h.loginFailed(c)
	}

	signed, err := token.Sign(acct, h.Secret, time.Now())
	if err != nil {
		return err
	}
	c.SetCookie(token.NewCookie(signed, h.Secure, time.Now()))

	publish(ctx, h.Log, h.Producer, events.TopicAccount, fmt.Sprint(acct.ID), map[string]any{
		"type":       "account_logged_in",
		"account_id": acct.ID,
	})

	return c.Redirect(http.StatusSeeOther, "/account/")
}

func (h *AccountHandler) Logout(c echo.Context) error {
	c.SetCookie(token.ExpiredCookie())
	h.Flash.Add(c, "You have been logged out.")
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *AccountHandler) Management(c echo.Context) error {
	acct := middleware.Account(c)
	content, err := view.AccountManagement(view.AccountManagementData{
		ID:        acct.ID,
		FirstName: acct.FirstName,
		Role:      acct.Role,
		Staff:     acct.IsStaff(),
	})
	if err != nil {
		return err
	}
	return h.View.Render(c, http.StatusOK, "Account Management", content)
}

func (h *AccountHandler) UpdatePage(c echo.Context) error {
	id, err := paramUint(c, "accountId")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid account id")
	}

	acct, err := h.Repo.ByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			h.Flash.Add(c, "Account not found.")
			return c.Redirect(http.StatusSeeOther, "/account/")
		}
		return err
	}

	content, err := view.AccountUpdateForm(view.AccountFormData{
		ID:        acct.ID,
		FirstName: acct.FirstName,
		LastName:  acct.LastName,
		Email:     acct.Email,
		CSRF:      csrfToken(c),
	})
	if err != nil {
		return err
	}
	return h.View.Render(c, http.StatusOK, "Update Account", content)
}

func (h *AccountHandler) Update(c echo.Context) error {
	id := formUint(c, "account_id")

	if errs := validate.AccountUpdateRules().Validate(c.FormValue); len(errs) > 0 {
		content, err := view.AccountUpdateForm(view.AccountFormData{
			ID:        id,
			FirstName: c.FormValue("account_firstname"),
			LastName:  c.FormValue("account_lastname"),
			Email:     c.FormValue("account_email"),
			Errors:    errs,
			CSRF:      csrfToken(c),
		})
		if err != nil {
			return err
		}
		return h.View.Render(c, http.StatusBadRequest, "Update Account", content)
	}

	err := h.Repo.Update(c.Request().Context(), id,
		c.FormValue("account_firstname"),
		c.FormValue("account_lastname"),
		c.FormValue("account_email"),
	)
	if err != nil {
		h.Log.Error("account update failed", "account_id", id, "error", err)
		h.Flash.Add(c, "Update failed.")
		return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/account/update/%d", id))
	}

	h.Flash.Add(c, "Account successfully updated.")
	return c.Redirect(http.StatusSeeOther, "/account/")
}

func (h *AccountHandler) UpdatePassword(c echo.Context) error {
	id := formUint(c, "account_id")

	if errs := validate.PasswordUpdateRules().Validate(c.FormValue); len(errs) > 0 {
		h.Flash.Add(c, errs[0])
		return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/account/update/%d", id))
	}

	passwordHash, err := hash.HashPassword(c.FormValue("account_password"))
	if err != nil {
		return err
	}

	if err := h.Repo.UpdatePassword(c.Request().Context(), id, passwordHash); err != nil {
		h.Log.Error("password update failed", "account_id", id, "error", err)
		h.Flash.Add(c, "Password update failed.")
		return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/account/update/%d", id))
	}

	h.Flash.Add(c, "Password successfully updated.")
	return c.Redirect(http.StatusSeeOther, "/account/")
}
