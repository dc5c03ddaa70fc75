package router

import (
	"github.com/labstack/echo/v4"

	"github.com/rfuentes/event-invitation/internal/handler"
	"github.com/rfuentes/event-invitation/internal/middleware"
)

// RegisterAdmin registers admin-scoped endpoints under /api/admin.
// All routes require a valid JWT with the ADMIN role. Authentication
// is the only gate: any authenticated admin may perform any admin
// operation.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/api/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)

	// ---- Guests ----
	g.GET("/invitados", a.ListGuests)
	g.POST("/invitados", a.CreateGuest)
	g.PUT("/invitados/:id", a.UpdateGuest)
	g.PATCH("/invitados/:id", a.UpdateGuest) // allow partial updates via PATCH as well
	g.DELETE("/invitados/:id", a.DeleteGuest)

	// ---- Statistics ----
	g.GET("/estadisticas", a.GetStatistics)

	// ---- Event document ----
	g.GET("/evento", a.GetEventAdmin)
	g.PUT("/evento", a.ReplaceEvent)
}
