package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/rfuentes/event-invitation/internal/handler"    // import the handlers that implement business logic
	"github.com/rfuentes/event-invitation/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// This endpoint can be used by load balancers or monitoring systems to
	// verify that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the admin authentication routes.  Login requires
// username, password and the shared secret code; refresh rotates the
// refresh token; logout revokes a single session.  The protected /me
// endpoint lives under the admin group registered elsewhere.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/api/auth")
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	// Protected endpoint returning the authenticated admin's identity.
	me := e.Group("/api/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)
	me.GET("/me", a.Me)
}
