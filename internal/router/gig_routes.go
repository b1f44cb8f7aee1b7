package router

import (
	"github.com/labstack/echo/v4"

	"github.com/bareloved/gigmaster-sub001/internal/handler"
	"github.com/bareloved/gigmaster-sub001/internal/middleware"
)

// RegisterGigs wires every authenticated gig, share, contact and
// packing-item route.  All routes require a valid access token with a
// known role.
func RegisterGigs(e *echo.Echo, h *handler.GigHandler, jwtSecret string) {
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("ORGANIZER", "MUSICIAN"))

	// Gigs. GET /gigs/:id returns the full pack aggregate; the metadata
	// endpoints never touch child collections.
	auth.POST("/gigs", h.CreateGig)
	auth.GET("/gigs", h.ListGigs)
	auth.GET("/gigs/:id", h.GetGigPack)
	auth.PUT("/gigs/:id", h.UpdateGig)
	auth.PATCH("/gigs/:id", h.UpdateGig)
	auth.DELETE("/gigs/:id", h.DeleteGig)

	// Whole-pack save: reconciles every child collection in one
	// transaction.
	auth.PUT("/gigs/:id/pack", h.SaveGigPack)

	// Search over the caller's own gigs.
	auth.GET("/search/gigs", h.SearchGigs)

	// Quick checklist toggle outside the pack save.
	auth.PATCH("/packing-items/:id/packed", h.TogglePacked)

	// Share tokens.
	auth.POST("/gigs/:id/shares", h.CreateShare)
	auth.GET("/gigs/:id/shares", h.ListShares)
	auth.DELETE("/shares/:id", h.RevokeShare)

	// Contacts.
	auth.POST("/contacts", h.CreateContact)
	auth.GET("/contacts", h.ListContacts)
	auth.GET("/contacts/:id", h.GetContact)
	auth.PUT("/contacts/:id", h.UpdateContact)
	auth.PATCH("/contacts/:id", h.UpdateContact)
	auth.DELETE("/contacts/:id", h.DeleteContact)
}
