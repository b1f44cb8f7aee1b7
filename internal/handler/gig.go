package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bareloved/gigmaster-sub001/internal/model"
	"github.com/bareloved/gigmaster-sub001/internal/queue"
	"github.com/bareloved/gigmaster-sub001/internal/repository"
)

// ----- DTOs -----

type gigReq struct {
	Title    string     `json:"title"`
	Venue    *string    `json:"venue"`
	City     *string    `json:"city"`
	StartsAt time.Time  `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
	Status   string     `json:"status"`
	Notes    *string    `json:"notes"`
}

func (req *gigReq) normalize() (string, bool) {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return "title is required", false
	}
	if req.StartsAt.IsZero() {
		return "starts_at is required", false
	}
	if req.EndsAt != nil && !req.EndsAt.After(req.StartsAt) {
		return "ends_at must be after starts_at", false
	}
	req.Status = strings.ToUpper(strings.TrimSpace(req.Status))
	if req.Status == "" {
		req.Status = model.GigStatusDraft
	}
	if !model.ValidGigStatus(req.Status) {
		return "unknown status", false
	}
	return "", true
}

// CreateGig handles POST /v1/gigs. The new gig starts with empty child
// collections; the pack save endpoint fills them in.
func (h *GigHandler) CreateGig(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req gigReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg, ok := req.normalize(); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	g := &model.Gig{
		OwnerID:  uid,
		Title:    req.Title,
		Venue:    req.Venue,
		City:     req.City,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
		Status:   req.Status,
		Notes:    req.Notes,
	}
	if err := h.GigRepo.Create(ctx, g); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create gig failed"})
	}

	h.Packs.EmitEvents(g, queue.ActionCreated, 0, 0)
	return c.JSON(http.StatusCreated, g)
}

// ListGigs handles GET /v1/gigs. With ?within_days=N it returns only
// upcoming gigs starting in the next N days; ?status= and ?time=
// (upcoming|past|any) filter the full listing.
func (h *GigHandler) ListGigs(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	status := strings.ToUpper(strings.TrimSpace(c.QueryParam("status")))
	if status != "" && !model.ValidGigStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}
	timeFilter := c.QueryParam("time")

	var gigs []*model.Gig
	switch {
	case c.QueryParam("within_days") != "":
		days, convErr := strconv.Atoi(c.QueryParam("within_days"))
		if convErr != nil || days <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "within_days must be a positive integer"})
		}
		gigs, err = h.GigRepo.UpcomingByOwner(ctx, uid, time.Now().UTC().AddDate(0, 0, days))
	case status != "" || timeFilter != "":
		if timeFilter == "" {
			// A bare status filter should span the whole history.
			timeFilter = "any"
		}
		gigs, _, err = h.GigRepo.SearchGigs(ctx, repository.GigSearchQuery{
			OwnerID:    uid,
			Status:     status,
			TimeFilter: timeFilter,
			Page:       1,
			PageSize:   500,
		})
	default:
		gigs, err = h.GigRepo.ListByOwner(ctx, uid)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list gigs failed"})
	}
	if gigs == nil {
		gigs = []*model.Gig{}
	}
	return c.JSON(http.StatusOK, echo.Map{"gigs": gigs, "count": len(gigs)})
}

// UpdateGig handles PUT/PATCH /v1/gigs/:id and rewrites gig metadata
// only. Child collections are untouched; the pack save endpoint owns
// those.
func (h *GigHandler) UpdateGig(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid gig id"})
	}
	var req gigReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg, ok := req.normalize(); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	g := &model.Gig{
		ID:       id,
		OwnerID:  uid,
		Title:    req.Title,
		Venue:    req.Venue,
		City:     req.City,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
		Status:   req.Status,
		Notes:    req.Notes,
	}
	if err := h.GigRepo.UpdateMeta(ctx, g); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "gig not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update gig failed"})
	}

	saved, err := h.GigRepo.GetByIDAndOwner(ctx, id, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	h.Packs.EmitEvents(saved, queue.ActionUpdated, 0, 0)
	return c.JSON(http.StatusOK, saved)
}

// DeleteGig handles DELETE /v1/gigs/:id. All child rows go with the gig.
func (h *GigHandler) DeleteGig(c echo.Context) error {
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

	// Snapshot before deletion so the events carry the gig's metadata.
	g, err := h.GigRepo.GetByIDAndOwner(ctx, id, uid)
	if err != nil {
		if errors.Is(err, repository.ErrGigNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "gig not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	if err := h.GigRepo.DeleteByIDAndOwner(ctx, id, uid); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "gig not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your gig"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete gig failed"})
		}
	}

	h.Packs.EmitEvents(g, queue.ActionDeleted, 0, 0)
	return c.NoContent(http.StatusNoContent)
}
