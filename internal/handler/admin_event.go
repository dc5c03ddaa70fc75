package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// GetEventAdmin handles GET /api/admin/evento. Same document as the
// public endpoint; kept separate so the admin panel does not hit the
// cached public route.
func (h *AdminHandler) GetEventAdmin(c echo.Context) error {
	doc, err := h.Events.Load()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load event failed"})
	}
	return c.JSON(http.StatusOK, doc)
}

// ReplaceEvent handles PUT /api/admin/evento. The document is replaced
// wholesale; the ledger never reads or writes into it.
func (h *AdminHandler) ReplaceEvent(c echo.Context) error {
	doc := map[string]any{}
	if err := c.Bind(&doc); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := h.Events.Replace(doc); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save event failed"})
	}
	return c.JSON(http.StatusOK, doc)
}
