package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mwalcott/motorlot/internal/events"
	"github.com/mwalcott/motorlot/internal/flash"
	"github.com/mwalcott/motorlot/internal/models"
	"github.com/mwalcott/motorlot/internal/repo"
	"github.com/mwalcott/motorlot/internal/search"
	"github.com/mwalcott/motorlot/internal/validate"
	"github.com/mwalcott/motorlot/internal/view"
)

type InventoryHandler struct {
	Repo     *repo.InventoryRepo
	Flash    *flash.Store
	View     *view.Renderer
	Producer *events.Producer
	Index    *search.VehicleIndex
	Log      *slog.Logger
}

func (h *InventoryHandler) ByClassification(c echo.Context) error {
	id, err := paramUint(c, "classificationId")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid classification id")
	}

	ctx := c.Request().Context()
	cl, err := h.Repo.ClassificationByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "classification not found")
		}
		return err
	}

	vehicles, err := h.Repo.VehiclesByClassification(ctx, id)
	if err != nil {
		return err
	}

	grid, err := view.VehicleGrid(vehicles)
	if err != nil {
		return err
	}
	return h.View.Render(c, http.StatusOK, cl.Name+" vehicles", grid)
}

func (h *InventoryHandler) Detail(c echo.Context) error {
	id, err := paramUint(c, "invId")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid vehicle id")
	}

	v, err := h.Repo.VehicleByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "vehicle not found")
		}
		return err
	}

	detail, err := view.VehicleDetail(v)
	if err != nil {
		return err
	}
	return h.View.Render(c, http.StatusOK, fmt.Sprintf("%s %s", v.Make, v.Model), detail)
}

func (h *InventoryHandler) Management(c echo.Context) error {
	classifications, err := h.Repo.Classifications(c.Request().Context())
	if err != nil {
		return err
	}
	sel, err := view.ClassificationSelect(classifications, 0)
	if err != nil {
		return err
	}
	content, err := view.InventoryManagement(view.InventoryManagementData{ClassificationSelect: sel})
	if err != nil {
		return err
	}
	return h.View.Render(c, http.StatusOK, "Inventory Management", content)
}

func (h *InventoryHandler) AddClassificationPage(c echo.Context) error {
	content, err := view.AddClassificationForm(view.ClassificationFormData{CSRF: csrfToken(c)})
	if err != nil {
		return err
	}
	return h.View.Render(c, http.StatusOK, "Add Classification", content)
}

func (h *InventoryHandler) AddClassification(c echo.Context) error {
	name := c.FormValue("classification_name")

	if errs := validate.ClassificationRules().Validate(c.FormValue); len(errs) > 0 {
		content, err := view.AddClassificationForm(view.ClassificationFormData{
			Name:   name,
			Errors: errs,
			CSRF:   csrfToken(c),
		})
		if err != nil {
			return err
		}
		return h.View.Render(c, http.StatusBadRequest, "Add Classification", content)
	}

	ctx := c.Request().Context()
	cl := models.Classification{Name: name}
	if err := h.Repo.AddClassification(ctx, &cl); err != nil {
		h.Log.Error("classification insert failed", "name", name, "error", err)
		h.Flash.Add(c, "Classification insert failed.")
		return c.Redirect(http.StatusSeeOther, "/inv/add-classification")
	}

	publish(ctx, h.Log, h.Producer, events.TopicInventory, fmt.Sprint(cl.ID), map[string]any{
		"type":                "classification_added",
		"classification_id":   cl.ID,
		"classification_name": cl.Name,
	})

	h.Flash.Add(c, "Classification added successfully.")
	return c.Redirect(http.StatusSeeOther, "/inv/")
}

func (h *InventoryHandler) inventoryFormData(c echo.Context, id uint, errs []string) (view.InventoryFormData, error) {
	classifications, err := h.Repo.Classifications(c.Request().Context())
	if err != nil {
		return view.InventoryFormData{}, err
	}
	sel, err := view.ClassificationSelect(classifications, formUint(c, "classification_id"))
	if err != nil {
		return view.InventoryFormData{}, err
	}
	return view.InventoryFormData{
		ID:                   id,
		ClassificationSelect: sel,
		Make:                 c.FormValue("inv_make"),
		Model:                c.FormValue("inv_model"),
		Year:                 c.FormValue("inv_year"),
		Description:          c.FormValue("inv_description"),
		Image:                c.FormValue("inv_image"),
		Thumbnail:            c.FormValue("inv_thumbnail"),
		Price:                c.FormValue("inv_price"),
		Miles:                c.FormValue("inv_miles"),
		Color:                c.FormValue("inv_color"),
		Errors:               errs,
		CSRF:                 csrfToken(c),
	}, nil
}

func (h *InventoryHandler) AddInventoryPage(c echo.Context) error {
	data, err := h.inventoryFormData(c, 0, nil)
	if err != nil {
		return err
	}
	content, err := view.AddInventoryForm(data)
	if err != nil {
		return err
	}
	return h.View.Render(c, http.StatusOK, "Add Inventory", content)
}

func (h *InventoryHandler) vehicleFromForm(c echo.Context) models.Vehicle {
	return models.Vehicle{
		ClassificationID: formUint(c, "classification_id"),
		Make:             c.FormValue("inv_make"),
		Model:            c.FormValue("inv_model"),
		Year:             formInt(c, "inv_year"),
		Description:      c.FormValue("inv_description"),
		Image:            c.FormValue("inv_image"),
		Thumbnail:        c.FormValue("inv_thumbnail"),
		Price:            formFloat(c, "inv_price"),
		Miles:            formInt(c, "inv_miles"),
		Color:            c.FormValue("inv_color"),
	}
}

func (h *InventoryHandler) AddInventory(c echo.Context) error {
	if errs := validate.InventoryRules().Validate(c.FormValue); len(errs) > 0 {
		data, err := h.inventoryFormData(c, 0, errs)
		if err != nil {
			return err
		}
		content, err := view.AddInventoryForm(data)
		if err != nil {
			return err
		}
		return h.View.Render(c, http.StatusBadRequest, "Add Inventory", content)
	}

	ctx := c.Request().Context()
	v := h.vehicleFromForm(c)
	if err := h.Repo.AddVehicle(ctx, &v); err != nil {
		h.Log.Error("vehicle insert failed", "error", err)
		data, derr := h.inventoryFormData(c, 0, []string{"Sorry, the vehicle could not be added."})
		if derr != nil {
			return derr
		}
		content, derr := view.AddInventoryForm(data)
		if derr != nil {
			return derr
		}
		return h.View.Render(c, http.StatusInternalServerError, "Add Inventory", content)
	}

	publish(ctx, h.Log, h.Producer, events.TopicInventory, fmt.Sprint(v.ID), map[string]any{
		"type":   "vehicle_added",
		"inv_id": v.ID,
		"make":   v.Make,
		"model":  v.Model,
	})
	if err := h.Index.IndexVehicle(ctx, v); err != nil {
		h.Log.Error("vehicle index failed", "inv_id", v.ID, "error", err)
	}

	h.Flash.Add(c, "Vehicle added successfully.")
	return c.Redirect(http.StatusSeeOther, "/inv/")
}

func (h *InventoryHandler) EditPage(c echo.Context) error {
	id, err := paramUint(c, "invId")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid vehicle id")
	}

	ctx := c.Request().Context()
	v, err := h.Repo.VehicleByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "vehicle not found")
		}
		return err
	}

	classifications, err := h.Repo.Classifications(ctx)
	if err != nil {
		return err
	}
	sel, err := view.ClassificationSelect(classifications, v.ClassificationID)
	if err != nil {
		return err
	}

	content, err := view.EditInventoryForm(view.InventoryFormData{
		ID:                   v.ID,
		ClassificationSelect: sel,
		Make:                 v.Make,
		Model:                v.Model,
		Year:                 strconv.Itoa(v.Year),
		Description:          v.Description,
		Image:                v.Image,
		Thumbnail:            v.Thumbnail,
		Price:                strconv.FormatFloat(v.Price, 'f', -1, 64),
		Miles:                strconv.Itoa(v.Miles),
		Color:                v.Color,
		CSRF:                 csrfToken(c),
	})
	if err != nil {
		return err
	}
	return h.View.Render(c, http.StatusOK, fmt.Sprintf("Edit %s %s", v.Make, v.Model), content)
}

func (h *InventoryHandler) Update(c echo.Context) error {
	id := formUint(c, "inv_id")

	if errs := validate.InventoryRules().Validate(c.FormValue); len(errs) > 0 {
		data, err := h.inventoryFormData(c, id, errs)
		if err != nil {
			return err
		}
		content, err := view.EditInventoryForm(data)
		if err != nil {
			return err
		}
		title := fmt.Sprintf("Edit %s %s", c.FormValue("inv_make"), c.FormValue("inv_model"))
		return h.View.Render(c, http.StatusBadRequest, title, content)
	}

	ctx := c.Request().Context()
	v := h.vehicleFromForm(c)
	v.ID = id
	if err := h.Repo.UpdateVehicle(ctx, &v); err != nil {
		h.Log.Error("vehicle update failed", "inv_id", id, "error", err)
		data, derr := h.inventoryFormData(c, id, []string{"Sorry, the update failed."})
		if derr != nil {
			return derr
		}
		content, derr := view.EditInventoryForm(data)
		if derr != nil {
			return derr
		}
		title := fmt.Sprintf("Edit %s %s", v.Make, v.Model)
		return h.View.Render(c, http.StatusInternalServerError, title, content)
	}

	publish(ctx, h.Log, h.Producer, events.TopicInventory, fmt.Sprint(v.ID), map[string]any{
		"type":   "vehicle_updated",
		"inv_id": v.ID,
	})
	if err := h.Index.IndexVehicle(ctx, v); err != nil {
		h.Log.Error("vehicle reindex failed", "inv_id", v.ID, "error", err)
	}

	h.Flash.Add(c, fmt.Sprintf("The %s %s was successfully updated.", v.Make, v.Model))
	return c.Redirect(http.StatusSeeOther, "/inv/")
}

func (h *InventoryHandler) DeleteConfirm(c echo.Context) error {
	id, err := paramUint(c, "invId")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid vehicle id")
	}

	v, err := h.Repo.VehicleByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "vehicle not found")
		}
		return err
	}

	content, err := view.DeleteConfirm(view.DeleteConfirmData{
		ID:    v.ID,
		Make:  v.Make,
		Model: v.Model,
		Year:  v.Year,
		Price: view.FormatPrice(v.Price),
		CSRF:  csrfToken(c),
	})
	if err != nil {
		return err
	}
	return h.View.Render(c, http.StatusOK, fmt.Sprintf("Delete %s %s", v.Make, v.Model), content)
}

func (h *InventoryHandler) Delete(c echo.Context) error {
	id := formUint(c, "inv_id")

	ctx := c.Request().Context()
	if err := h.Repo.DeleteVehicle(ctx, id); err != nil {
		h.Log.Error("vehicle delete failed", "inv_id", id, "error", err)
		h.Flash.Add(c, "Delete failed. Please try again.")
		return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/inv/delete/%d", id))
	}

	publish(ctx, h.Log, h.Producer, events.TopicInventory, fmt.Sprint(id), map[string]any{
		"type":   "vehicle_deleted",
		"inv_id": id,
	})
	if err := h.Index.DeleteVehicle(ctx, id); err != nil {
		h.Log.Error("vehicle deindex failed", "inv_id", id, "error", err)
	}

	h.Flash.Add(c, "Vehicle successfully deleted.")
	return c.Redirect(http.StatusSeeOther, "/inv/")
}

// InventoryJSON backs the management view's vehicle table.
func (h *InventoryHandler) InventoryJSON(c echo.Context) error {
	id, err := paramUint(c, "classification_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid classification id")
	}

	vehicles, err := h.Repo.VehiclesByClassification(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, vehicles)
}

func (h *InventoryHandler) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing query")
	}
	if !h.Index.Enabled() {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not available")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	from, size := paginate(page, size)

	total, vehicles, err := h.Index.Search(c.Request().Context(), q, from, size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "vehicles": vehicles})
}
