package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mwalcott/motorlot/internal/hash"
	"github.com/mwalcott/motorlot/internal/models"
	"github.com/mwalcott/motorlot/internal/token"
)

func registrationForm() url.Values {
	return url.Values{
		"account_firstname": {"Sam"},
		"account_lastname":  {"Harper"},
		"account_email":     {"sam@example.com"},
		"account_password":  {"plaintext-password"},
	}
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	c, rec := env.newContext(formRequest(http.MethodPost, "/account/register", registrationForm()))
	require.NoError(t, env.Account.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), "Congratulations")

	var acct models.Account
	require.NoError(t, env.DB.Where("email = ?", "sam@example.com").First(&acct).Error)
	require.Equal(t, "Sam", acct.FirstName)
	require.Equal(t, models.RoleCustomer, acct.Role)
	require.NotEqual(t, "plaintext-password", acct.PasswordHash,
		"stored password must never equal the submitted plaintext")
	require.True(t, hash.CheckPassword(acct.PasswordHash, "plaintext-password"))
}

func TestRegisterValidationFailure(t *testing.T) {
	env := newTestEnv(t)

	form := registrationForm()
	form.Set("account_email", "not-an-email")

	c, rec := env.newContext(formRequest(http.MethodPost, "/account/register", form))
	require.NoError(t, env.Account.Register(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "A valid email is required.")
	// Submitted values are echoed back.
	require.Contains(t, rec.Body.String(), `value="Sam"`)

	var count int64
	env.DB.Model(&models.Account{}).Count(&count)
	require.Zero(t, count)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	c, rec := env.newContext(formRequest(http.MethodPost, "/account/register", registrationForm()))
	require.NoError(t, env.Account.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = env.newContext(formRequest(http.MethodPost, "/account/register", registrationForm()))
	require.NoError(t, env.Account.Register(c))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "the registration failed")

	var count int64
	env.DB.Model(&models.Account{}).Count(&count)
	require.Equal(t, int64(1), count)
}

func seedAccount(t *testing.T, env *testEnv, email, password, role string) models.Account {
	t.Helper()
	passwordHash, err := hash.HashPassword(password)
	require.NoError(t, err)
	acct := models.Account{
		FirstName:    "Dana",
		LastName:     "Wells",
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	}
	require.NoError(t, env.DB.Create(&acct).Error)
	return acct
}

func TestLoginSetsCookieAndRedirects(t *testing.T) {
	env := newTestEnv(t)
	seedAccount(t, env, "dana@example.com", "correct-horse", models.RoleEmployee)

	form := url.Values{
		"account_email":    {"dana@example.com"},
		"account_password": {"correct-horse"},
	}
	c, rec := env.newContext(formRequest(http.MethodPost, "/account/login", form))
	require.NoError(t, env.Account.Login(c))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/account/", rec.Header().Get("Location"))

	var jwtCookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == token.CookieName {
			jwtCookie = ck
		}
	}
	require.NotNil(t, jwtCookie, "login must set the jwt cookie")
	require.True(t, jwtCookie.HttpOnly)
	require.False(t, jwtCookie.Secure, "secure flag stays off outside production")

	data, err := token.Verify(jwtCookie.Value, testTokenSecret, time.Now())
	require.NoError(t, err)
	require.Equal(t, "Dana", data.FirstName)
	require.Equal(t, models.RoleEmployee, data.Role)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	env := newTestEnv(t)
	seedAccount(t, env, "dana@example.com", "correct-horse", models.RoleCustomer)

	const notice = "Please check your credentials and try again."

	wrongPassword := url.Values{
		"account_email":    {"dana@example.com"},
		"account_password": {"wrong-password"},
	}
	c, recWrong := env.newContext(formRequest(http.MethodPost, "/account/login", wrongPassword))
	require.NoError(t, env.Account.Login(c))

	unknownEmail := url.Values{
		"account_email":    {"dana@example.com"},
		"account_password": {"whatever"},
	}
	unknownEmail.Set("account_email", "nobody@example.com")
	c, recUnknown := env.newContext(formRequest(http.MethodPost, "/account/login", unknownEmail))
	require.NoError(t, env.Account.Login(c))

	require.Equal(t, recWrong.Code, recUnknown.Code,
		"wrong password and unknown email must return the same status")
	require.Equal(t, http.StatusUnauthorized, recWrong.Code)
	require.Contains(t, recWrong.Body.String(), notice)
	require.Contains(t, recUnknown.Body.String(), notice)

	for _, rec := range []*httptest.ResponseRecorder{recWrong, recUnknown} {
		for _, ck := range rec.Result().Cookies() {
			require.NotEqual(t, token.CookieName, ck.Name, "no jwt cookie on failed login")
		}
	}
}

func TestUpdatePassword(t *testing.T) {
	env := newTestEnv(t)
	acct := seedAccount(t, env, "dana@example.com", "old-password", models.RoleCustomer)

	form := url.Values{
		"account_id":       {"1"},
		"account_password": {"new-password"},
	}
	c, rec := env.newContext(formRequest(http.MethodPost, "/account/update-password", form))
	require.NoError(t, env.Account.UpdatePassword(c))
	require.Equal(t, http.StatusSeeOther, rec.Code)

	var updated models.Account
	require.NoError(t, env.DB.First(&updated, acct.ID).Error)
	require.True(t, hash.CheckPassword(updated.PasswordHash, "new-password"))
	require.False(t, hash.CheckPassword(updated.PasswordHash, "old-password"))
}
