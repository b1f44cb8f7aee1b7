package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bareloved/gigmaster-sub001/internal/model"
	"github.com/bareloved/gigmaster-sub001/internal/repository"
)

// SearchGigs handles GET /v1/search/gigs with query params: title, city,
// venue, status, time (upcoming|past|any), page, page_size.
func (h *GigHandler) SearchGigs(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	page := 1
	if v := c.QueryParam("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	pageSize := 20
	if v := c.QueryParam("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			pageSize = n
		}
	}
	if pageSize > 100 {
		pageSize = 100
	}

	q := repository.GigSearchQuery{
		OwnerID:    uid,
		Title:      c.QueryParam("title"),
		City:       c.QueryParam("city"),
		Venue:      c.QueryParam("venue"),
		Status:     c.QueryParam("status"),
		TimeFilter: c.QueryParam("time"),
		Page:       page,
		PageSize:   pageSize,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	gigs, total, err := h.GigRepo.SearchGigs(ctx, q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "search failed"})
	}
	if gigs == nil {
		gigs = []*model.Gig{}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"gigs":      gigs,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}
