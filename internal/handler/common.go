package handler // handler defines http handlers

import (
    "errors"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/bareloved/gigmaster-sub001/internal/config"
    "github.com/bareloved/gigmaster-sub001/internal/repository"
    "github.com/bareloved/gigmaster-sub001/internal/service"
)

// GigHandler bundles the repositories and the pack service for the
// authenticated gig endpoints.
type GigHandler struct {
    Cfg      config.Config
    GigRepo  *repository.GigRepo
    Shares   *repository.ShareRepo
    Contacts *repository.ContactRepo
    Lineup   *repository.LineupRepo
    Packs    *service.PackService
}

// NewGigHandler constructs a GigHandler and panics if any dependency is nil.
func NewGigHandler(cfg config.Config, gigs *repository.GigRepo,
    shares *repository.ShareRepo, contacts *repository.ContactRepo, lineup *repository.LineupRepo,
    packs *service.PackService) *GigHandler {
    if gigs == nil || shares == nil || contacts == nil || lineup == nil || packs == nil {
        panic("nil dependency passed to NewGigHandler")
    }
    return &GigHandler{
        Cfg:      cfg,
        GigRepo:  gigs,
        Shares:   shares,
        Contacts: contacts,
        Lineup:   lineup,
        Packs:    packs,
    }
}

// getUserID extracts the user_id from echo.Context and converts it to uint64.
// JWT numeric claims decode as float64; other representations are handled
// for robustness.
func getUserID(c echo.Context) (uint64, error) {
    v := c.Get("user_id")
    switch t := v.(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid user_id in context")
}
