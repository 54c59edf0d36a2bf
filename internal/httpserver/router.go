package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/mwalcott/motorlot/internal/handlers"
	"github.com/mwalcott/motorlot/internal/middleware"
)

type Deps struct {
	Base      *handlers.BaseHandler
	Account   *handlers.AccountHandler
	Inventory *handlers.InventoryHandler
	Auth      *middleware.JWT
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	e.GET("/", d.Base.Home)

	acct := e.Group("/account")

	acct.GET("/login", d.Account.LoginPage)
	acct.GET("/register", d.Account.RegisterPage)
	acct.POST("/register", d.Account.Register)
	acct.POST("/login", d.Account.Login)
	acct.GET("/logout", d.Account.Logout)

	acct.GET("", d.Account.Management, d.Auth.RequireLogin)
	acct.GET("/update/:accountId", d.Account.UpdatePage, d.Auth.RequireLogin)
	acct.POST("/update", d.Account.Update, d.Auth.RequireLogin)
	acct.POST("/update-password", d.Account.UpdatePassword, d.Auth.RequireLogin)

	inv := e.Group("/inv")

	inv.GET("/type/:classificationId", d.Inventory.ByClassification)
	inv.GET("/detail/:invId", d.Inventory.Detail)
	inv.GET("/search", d.Inventory.Search)

	// Every management and mutation route sits behind the staff gate.
	staff := inv.Group("", d.Auth.RequireStaff)

	staff.GET("", d.Inventory.Management)
	staff.GET("/add-classification", d.Inventory.AddClassificationPage)
	staff.POST("/add-classification", d.Inventory.AddClassification)
	staff.GET("/add-inventory", d.Inventory.AddInventoryPage)
	staff.POST("/add-inventory", d.Inventory.AddInventory)
	staff.GET("/edit/:invId", d.Inventory.EditPage)
	staff.POST("/update", d.Inventory.Update)
	staff.GET("/delete/:invId", d.Inventory.DeleteConfirm)
	staff.POST("/delete", d.Inventory.Delete)
	staff.GET("/getInventory/:classification_id", d.Inventory.InventoryJSON)
}
