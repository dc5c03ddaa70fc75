package middleware // reusable HTTP middleware shared by the admin routes

import (
    "net/http"
    "strings"

    "github.com/golang-jwt/jwt/v5"
    "github.com/labstack/echo/v4"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// issued at admin login and injects its claims into the request context.
// The provided secret must match the one used when signing tokens.  Wrap
// the /api/admin routes with this so handlers can read the authenticated
// admin via c.Get("user_id"), c.Get("role") and c.Get("username").
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            // The Authorization header must carry "Bearer <token>"; anything
            // else is rejected before parsing.
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            // Parse with HS256 only.  The key callback rejects any token
            // whose signing method is not HMAC, which closes the classic
            // alg-substitution hole.
            tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
                if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
                    return nil, echo.ErrUnauthorized
                }
                return []byte(secret), nil
            })
            if err != nil || !tok.Valid {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }

            claims, ok := tok.Claims.(jwt.MapClaims)
            if !ok {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
            }

            // Expose the admin identity to downstream middleware and
            // handlers.  Type assertions are left to the consumers.
            c.Set("user_id", claims["sub"])
            c.Set("role", claims["role"])
            c.Set("username", claims["username"])
            return next(c)
        }
    }
}
