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
)

type contactReq struct {
	Name     string  `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	RoleHint *string `json:"role_hint"`
	Notes    *string `json:"notes"`
}

func (req *contactReq) normalize() (string, bool) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return "name is required", false
	}
	if req.Email != nil {
		trimmed := strings.ToLower(strings.TrimSpace(*req.Email))
		if trimmed == "" {
			req.Email = nil
		} else {
			req.Email = &trimmed
		}
	}
	return "", true
}

// CreateContact handles POST /v1/contacts.
func (h *GigHandler) CreateContact(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req contactReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg, ok := req.normalize(); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ct := &model.Contact{
		OwnerID:  uid,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		RoleHint: req.RoleHint,
		Notes:    req.Notes,
	}
	if err := h.Contacts.Create(ctx, ct); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create contact failed"})
	}
	return c.JSON(http.StatusCreated, ct)
}

// ListContacts handles GET /v1/contacts.
func (h *GigHandler) ListContacts(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	contacts, err := h.Contacts.ListByOwner(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list contacts failed"})
	}
	if contacts == nil {
		contacts = []*model.Contact{}
	}
	return c.JSON(http.StatusOK, echo.Map{"contacts": contacts, "count": len(contacts)})
}

// GetContact handles GET /v1/contacts/:id.
func (h *GigHandler) GetContact(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid contact id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ct, err := h.Contacts.GetByIDAndOwner(ctx, id, uid)
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "contact not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, ct)
}

// UpdateContact handles PUT/PATCH /v1/contacts/:id.
func (h *GigHandler) UpdateContact(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid contact id"})
	}
	var req contactReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg, ok := req.normalize(); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ct := &model.Contact{
		ID:       id,
		OwnerID:  uid,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		RoleHint: req.RoleHint,
		Notes:    req.Notes,
	}
	if err := h.Contacts.Update(ctx, ct); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "contact not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update contact failed"})
	}
	saved, err := h.Contacts.GetByIDAndOwner(ctx, id, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, saved)
}

// DeleteContact handles DELETE /v1/contacts/:id. Lineup roles that
// referenced the contact keep their row; only the reference is cleared.
func (h *GigHandler) DeleteContact(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid contact id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Contacts.GetByIDAndOwner(ctx, id, uid); err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "contact not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := h.Lineup.ClearContactRefs(ctx, uid, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "detach contact failed"})
	}
	if err := h.Contacts.DeleteByIDAndOwner(ctx, id, uid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "contact not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete contact failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
