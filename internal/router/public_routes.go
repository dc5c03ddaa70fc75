package router

import (
	"github.com/labstack/echo/v4"

	"github.com/rfuentes/event-invitation/internal/handler"
)

// RegisterPublic registers the unauthenticated invitation endpoints.
// These are the routes printed on the invitations themselves, so they
// carry no JWT middleware; the guest's uuid acts as the capability.
// Read endpoints go through the response cache, the RSVP action goes
// through the rate limiter so a single invitation link cannot be used
// to hammer the database.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache, ratelimit echo.MiddlewareFunc) {
	e.GET("/api/status", p.Status)

	// Guest self-lookup by opaque uuid or printed code.
	e.GET("/api/invitado/:uuid", p.GetGuestByUUID, cache)
	e.GET("/api/invitado-codigo/:codigo", p.GetGuestByCode, cache)

	// The event document and the combined payload the frontend renders from.
	e.GET("/api/evento", p.GetEvent, cache)
	e.GET("/api/datos-completos/:uuid", p.GetFullPayload, cache)

	// The only public mutation: confirm or decline attendance.
	e.POST("/api/invitado/:uuid/rsvp", p.SubmitRSVP, ratelimit)
}
