package controllerImp

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"yearplan/database"
	"yearplan/pkg/plan/controller"
	"yearplan/pkg/plan/repository"
	"yearplan/pkg/plan/types"
)

type PlanCtrl struct{ repo repository.PlanRepository }

var _ controller.PlanController = (*PlanCtrl)(nil)

func New(repo repository.PlanRepository) *PlanCtrl { return &PlanCtrl{repo} }

func (h *PlanCtrl) Get(c echo.Context) error {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "year must be an integer"})
	}
	view, err := h.repo.GetByYear(year)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, view)
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no plan data for this year"})
	case errors.Is(err, repository.ErrCorrupt):
		// Same 404 as NotFound toward the client; the frontend falls
		// back to defaults either way. Keep the integrity problem
		// visible server-side.
		log.Printf("WARN: corrupt plan row: %v", err)
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no plan data for this year"})
	default:
		return h.fail(c, err)
	}
}

func (h *PlanCtrl) Save(c echo.Context) error {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "year must be an integer"})
	}
	var in types.SavePlanInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	switch err := h.repo.Upsert(year, in); {
	case err == nil:
		return c.JSON(http.StatusOK, map[string]any{"success": true})
	case errors.Is(err, repository.ErrValidation):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		return h.fail(c, err)
	}
}

func (h *PlanCtrl) Backup(c echo.Context) error {
	rows, err := h.repo.ExportAll()
	if err != nil {
		return h.fail(c, err)
	}
	name := fmt.Sprintf("annual-plans-backup-%s.json", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.JSON(http.StatusOK, rows)
}

func (h *PlanCtrl) Restore(c echo.Context) error {
	var rows []types.BackupRow
	if err := c.Bind(&rows); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "restore body must be a JSON array of rows"})
	}
	if err := h.repo.RestoreAll(rows); err != nil {
		if errors.Is(err, database.ErrStoreOffline) {
			return h.fail(c, err)
		}
		// Already rolled back; report the underlying cause.
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "restore failed: " + err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "restored": len(rows)})
}

func (h *PlanCtrl) ClearData(c echo.Context) error {
	if err := h.repo.ResetAll(); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

// fail maps whatever the handlers above did not claim: the offline
// sentinel to 503, anything else to a generic 500.
func (h *PlanCtrl) fail(c echo.Context, err error) error {
	if errors.Is(err, database.ErrStoreOffline) {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "database connection not established"})
	}
	log.Printf("plan: %v", err)
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}
