// Authenticated admin operations on the guest list: create, list,
// update, delete and the statistics endpoint. All routes assume the JWT
// and role middleware already ran; handlers only translate ledger and
// repository errors into HTTP responses.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/rfuentes/event-invitation/internal/config"
	"github.com/rfuentes/event-invitation/internal/event"
	"github.com/rfuentes/event-invitation/internal/ledger"
	"github.com/rfuentes/event-invitation/internal/repository"
)

// AdminHandler bundles dependencies for admin guest management.
type AdminHandler struct {
	Cfg    config.Config
	Guests *repository.GuestRepo
	Events *event.Store
}

// NewAdminHandler constructs an AdminHandler and panics if a dependency is nil.
func NewAdminHandler(cfg config.Config, guests *repository.GuestRepo, events *event.Store) *AdminHandler {
	if guests == nil || events == nil {
		panic("nil dependency passed to NewAdminHandler")
	}
	return &AdminHandler{Cfg: cfg, Guests: guests, Events: events}
}

type createGuestReq struct {
	Nombres    string `json:"nombres"`
	MaxAdultos *int   `json:"max_adultos"`
	MaxNinos   *int   `json:"max_ninos"`
	Codigo     string `json:"codigo"`
}

type updateGuestReq struct {
	Nombres    *string `json:"nombres"`
	MaxAdultos *int    `json:"max_adultos"`
	MaxNinos   *int    `json:"max_ninos"`
	Estado     *string `json:"estado"`
}

// ListGuests handles GET /api/admin/invitados.
func (h *AdminHandler) ListGuests(c echo.Context) error {
	guests, err := h.Guests.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]guestResponse, 0, len(guests))
	for _, g := range guests {
		out = append(out, toGuestResponse(g))
	}
	return c.JSON(http.StatusOK, out)
}

// CreateGuest handles POST /api/admin/invitados. When no code is given
// the next sequential one under the configured prefix is assigned; an
// explicit code that already exists yields 409 and leaves the existing
// record untouched.
func (h *AdminHandler) CreateGuest(c echo.Context) error {
	var req createGuestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Nombres) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nombres required"})
	}
	if req.MaxAdultos == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "max_adultos required"})
	}
	maxChildren := 0
	if req.MaxNinos != nil {
		maxChildren = *req.MaxNinos
	}

	ctx := c.Request().Context()
	code := ledger.NormalizeCode(req.Codigo)
	if code == "" {
		// Read-then-increment has a race window under parallel creates;
		// the unique index on codigo is the safety net.
		last, err := h.Guests.LastCode(ctx, h.Cfg.CodePrefix)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		code = ledger.NextCode(h.Cfg.CodePrefix, last)
	}

	g, err := ledger.NewGuest(req.Nombres, *req.MaxAdultos, maxChildren, code, uuid.NewString())
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrEmptyName):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "nombres required"})
		case errors.Is(err, ledger.ErrNegativeCount):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "counts must not be negative"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
		}
	}
	if err := h.Guests.Create(ctx, &g); err != nil {
		if errors.Is(err, repository.ErrCodeExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "code already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, toGuestResponse(&g))
}

// UpdateGuest handles PUT and PATCH /api/admin/invitados/:id. All fields are
// optional; a status value is an unconditional override with the side
// effects of the matching RSVP transition.
func (h *AdminHandler) UpdateGuest(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updateGuestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()
	g, err := h.Guests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrGuestNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	patch := ledger.Patch{
		DisplayName: req.Nombres,
		MaxAdults:   req.MaxAdultos,
		MaxChildren: req.MaxNinos,
		Status:      req.Estado,
	}
	if err := ledger.ApplyPatch(g, patch, time.Now().UTC()); err != nil {
		switch {
		case errors.Is(err, ledger.ErrInvalidStatus):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
		case errors.Is(err, ledger.ErrNegativeCount):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "counts must not be negative"})
		case errors.Is(err, ledger.ErrEmptyName):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "nombres required"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
	}
	if err := h.Guests.Update(ctx, g); err != nil {
		if errors.Is(err, repository.ErrGuestNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, toGuestResponse(g))
}

// DeleteGuest handles DELETE /api/admin/invitados/:id. Deletion is
// terminal; there are no dependent records to cascade.
func (h *AdminHandler) DeleteGuest(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Guests.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrGuestNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// GetStatistics handles GET /api/admin/estadisticas. Adult and child
// totals count only confirmed guests.
func (h *AdminHandler) GetStatistics(c echo.Context) error {
	s, err := h.Guests.Stats(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"total":                     s.Total,
		"confirmados":               s.Confirmed,
		"pendientes":                s.Pending,
		"rechazados":                s.Declined,
		"total_adultos_confirmados": s.ConfirmedAdults,
		"total_ninos_confirmados":   s.ConfirmedChildren,
	})
}
