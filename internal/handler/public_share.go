package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bareloved/gigmaster-sub001/internal/repository"
	"github.com/bareloved/gigmaster-sub001/internal/service"
)

// PublicHandler serves the unauthenticated shared-gig view.
type PublicHandler struct {
	Gigs   *repository.GigRepo
	Shares *repository.ShareRepo
	Packs  *service.PackService
}

func NewPublicHandler(gigs *repository.GigRepo, shares *repository.ShareRepo, packs *service.PackService) *PublicHandler {
	if gigs == nil || shares == nil || packs == nil {
		panic("nil dependency passed to NewPublicHandler")
	}
	return &PublicHandler{Gigs: gigs, Shares: shares, Packs: packs}
}

// GetSharedPack handles GET /v1/shared/:token. Unknown, revoked and
// expired tokens all answer 404; a probing client learns nothing about
// which it was. The owner ID never appears in the response (the model
// hides it from JSON).
func (h *PublicHandler) GetSharedPack(c echo.Context) error {
	token := strings.TrimSpace(c.Param("token"))
	if token == "" {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	st, err := h.Shares.GetActiveByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrShareNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	g, err := h.Gigs.GetByID(ctx, st.GigID)
	if err != nil {
		if errors.Is(err, repository.ErrGigNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	pack, err := h.Packs.LoadPack(ctx, g)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load pack failed"})
	}
	return c.JSON(http.StatusOK, pack)
}
