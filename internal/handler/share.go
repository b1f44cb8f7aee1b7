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
	"github.com/bareloved/gigmaster-sub001/internal/repository"
	"github.com/bareloved/gigmaster-sub001/internal/utils"
)

type shareCreateReq struct {
	Label   *string `json:"label"`
	TTLDays *int    `json:"ttl_days"` // overrides the configured default; 0 = never expires
}

// CreateShare handles POST /v1/gigs/:id/shares: mint a share token for a
// gig the caller owns. A token collision (UNIQUE index) is retried once
// with a fresh value before giving up.
func (h *GigHandler) CreateShare(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	gigID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || gigID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid gig id"})
	}
	var req shareCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Label != nil {
		trimmed := strings.TrimSpace(*req.Label)
		if trimmed == "" {
			req.Label = nil
		} else {
			req.Label = &trimmed
		}
	}

	ttlDays := h.Cfg.ShareTTLDays
	if req.TTLDays != nil {
		if *req.TTLDays < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "ttl_days must be >= 0"})
		}
		ttlDays = *req.TTLDays
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.GigRepo.GetByIDAndOwner(ctx, gigID, uid); err != nil {
		if errors.Is(err, repository.ErrGigNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "gig not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	var expiresAt *time.Time
	if ttlDays > 0 {
		exp := time.Now().UTC().AddDate(0, 0, ttlDays)
		expiresAt = &exp
	}

	var st *model.ShareToken
	for attempt := 0; attempt < 2; attempt++ {
		token, err := utils.NewShareToken()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token generation failed"})
		}
		candidate := &model.ShareToken{GigID: gigID, Token: token, Label: req.Label, ExpiresAt: expiresAt}
		err = h.Shares.Create(ctx, candidate)
		if err == nil {
			st = candidate
			break
		}
		if !errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create share failed"})
		}
	}
	if st == nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create share failed"})
	}
	return c.JSON(http.StatusCreated, st)
}

// ListShares handles GET /v1/gigs/:id/shares. Revoked and expired tokens
// are included so owners can audit what was handed out.
func (h *GigHandler) ListShares(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	gigID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || gigID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid gig id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.GigRepo.GetByIDAndOwner(ctx, gigID, uid); err != nil {
		if errors.Is(err, repository.ErrGigNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "gig not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	shares, err := h.Shares.ListByGig(ctx, gigID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list shares failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"shares": shares, "count": len(shares)})
}

// RevokeShare handles DELETE /v1/shares/:id.
func (h *GigHandler) RevokeShare(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid share id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Shares.RevokeByIDAndOwner(ctx, id, uid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "share not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "revoke failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
