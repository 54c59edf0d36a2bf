package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/mwalcott/motorlot/internal/events"
	"github.com/mwalcott/motorlot/internal/flash"
	"github.com/mwalcott/motorlot/internal/models"
	"github.com/mwalcott/motorlot/internal/repo"
	"github.com/mwalcott/motorlot/internal/view"
)

var testTokenSecret = []byte("handlers-test-secret")

func initTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(&models.Account{}, &models.Classification{}, &models.Vehicle{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

type testEnv struct {
	DB        *gorm.DB
	E         *echo.Echo
	Account   *AccountHandler
	Inventory *InventoryHandler
}

func newTestEnv(t *testing.T) *testEnv {
	db := initTestDB(t)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	flashStore := flash.NewStore([]byte("test-session-secret"), false)

	accountRepo := &repo.AccountRepo{DB: db}
	inventoryRepo := &repo.InventoryRepo{DB: db}
	renderer := &view.Renderer{Inv: inventoryRepo, Flash: flashStore, Log: logger}
	producer := events.NewProducer(nil)

	return &testEnv{
		DB: db,
		E:  echo.New(),
		Account: &AccountHandler{
			Repo:     accountRepo,
			Secret:   testTokenSecret,
			Secure:   false,
			Flash:    flashStore,
			View:     renderer,
			Producer: producer,
			Log:      logger,
		},
		Inventory: &InventoryHandler{
			Repo:     inventoryRepo,
			Flash:    flashStore,
			View:     renderer,
			Producer: producer,
			Log:      logger,
		},
	}
}

func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func (env *testEnv) newContext(req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	return env.E.NewContext(req, rec), rec
}
