package router

import (
	"github.com/labstack/echo/v4"

	"github.com/bareloved/gigmaster-sub001/internal/handler"
)

// RegisterPublic registers the unauthenticated shared-gig route.  No JWT
// or role middleware applies; the token in the URL is the credential.
// The optional cache middleware (built in main from config) keeps
// repeated loads of a popular share link off the database.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache echo.MiddlewareFunc) {
	if cache != nil {
		e.GET("/v1/shared/:token", p.GetSharedPack, cache)
		return
	}
	e.GET("/v1/shared/:token", p.GetSharedPack)
}
