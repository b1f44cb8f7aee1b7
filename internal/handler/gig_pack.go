package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bareloved/gigmaster-sub001/internal/repository"
	"github.com/bareloved/gigmaster-sub001/internal/service"
)

// GetGigPack handles GET /v1/gigs/:id and returns the full aggregate:
// gig metadata plus lineup, schedule, materials, packing checklist and
// setlist, each ordered by its stored sort index.
func (h *GigHandler) GetGigPack(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid gig id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	g, err := h.GigRepo.GetByIDAndOwner(ctx, id, uid)
	if err != nil {
		if errors.Is(err, repository.ErrGigNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "gig not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	pack, err := h.Packs.LoadPack(ctx, g)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load pack failed"})
	}
	return c.JSON(http.StatusOK, pack)
}

// SaveGigPack handles PUT /v1/gigs/:id/pack: the whole-pack save. The
// payload is the denormalized aggregate; rows with IDs are updated, rows
// without are inserted, rows no longer submitted are deleted, and the
// payload order becomes the stored order. Everything commits or nothing
// does.
func (h *GigHandler) SaveGigPack(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid gig id"})
	}

	var in service.PackSaveInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	pack, err := h.Packs.SavePack(ctx, uid, id, &in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalid):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, repository.ErrUnknownChildID):
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "payload references rows this gig does not own"})
		case errors.Is(err, repository.ErrGigNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "gig not found"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save pack failed"})
		}
	}
	return c.JSON(http.StatusOK, pack)
}
