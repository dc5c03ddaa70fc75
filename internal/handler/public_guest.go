// Package handler exposes HTTP handlers for both authenticated and public
// endpoints. This file defines the public invitation surface: guests
// look themselves up by opaque uuid or by their printed code, read the
// event description and submit their RSVP. No authentication is
// required; the uuid is the capability.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rfuentes/event-invitation/internal/event"
	"github.com/rfuentes/event-invitation/internal/ledger"
	"github.com/rfuentes/event-invitation/internal/model"
	"github.com/rfuentes/event-invitation/internal/queue"
	"github.com/rfuentes/event-invitation/internal/repository"
	queue_publisher "github.com/rfuentes/event-invitation/internal/service"
)

// PublicHandler aggregates the dependencies of the unauthenticated
// invitation endpoints.
type PublicHandler struct {
	Guests *repository.GuestRepo
	Events *event.Store
}

// NewPublicHandler constructs a PublicHandler and panics if a dependency is nil.
func NewPublicHandler(guests *repository.GuestRepo, events *event.Store) *PublicHandler {
	if guests == nil || events == nil {
		panic("nil dependency passed to NewPublicHandler")
	}
	return &PublicHandler{Guests: guests, Events: events}
}

// guestResponse is the wire representation of a guest. Field names are
// the Spanish ones the deployed frontend expects; the derived person
// totals are included so clients never recompute them.
type guestResponse struct {
	ID                uint64     `json:"id"`
	UUID              string     `json:"uuid"`
	Codigo            string     `json:"codigo"`
	Nombres           string     `json:"nombres"`
	MaxAdultos        int        `json:"max_adultos"`
	MaxNinos          int        `json:"max_ninos"`
	MaxPersonas       int        `json:"max_personas"`
	CantidadAdultos   int        `json:"cantidad_adultos"`
	CantidadNinos     int        `json:"cantidad_ninos"`
	CantidadPersonas  int        `json:"cantidad_personas"`
	Estado            string     `json:"estado"`
	Confirmacion      *string    `json:"confirmacion"`
	FechaConfirmacion *time.Time `json:"fecha_confirmacion"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func toGuestResponse(g *model.Guest) guestResponse {
	return guestResponse{
		ID:                g.ID,
		UUID:              g.UUID,
		Codigo:            g.Code,
		Nombres:           g.DisplayName,
		MaxAdultos:        g.MaxAdults,
		MaxNinos:          g.MaxChildren,
		MaxPersonas:       g.MaxPersons(),
		CantidadAdultos:   g.ConfirmedAdults,
		CantidadNinos:     g.ConfirmedChildren,
		CantidadPersonas:  g.ConfirmedPersons(),
		Estado:            string(g.Status),
		Confirmacion:      g.Note,
		FechaConfirmacion: g.ConfirmedAt,
		CreatedAt:         g.CreatedAt,
		UpdatedAt:         g.UpdatedAt,
	}
}

// rsvpReq is the body of the public RSVP action. "si" confirms, any
// other answer declines. Counts are optional; omitted counts default
// to the party's full allotment.
type rsvpReq struct {
	Confirmacion    string `json:"confirmacion"`
	CantidadAdultos *int   `json:"cantidad_adultos"`
	CantidadNinos   *int   `json:"cantidad_ninos"`
}

// GetGuestByUUID handles GET /api/invitado/:uuid.
func (h *PublicHandler) GetGuestByUUID(c echo.Context) error {
	uuid := strings.TrimSpace(c.Param("uuid"))
	if uuid == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid uuid"})
	}
	g, err := h.Guests.GetByUUID(c.Request().Context(), uuid)
	if err != nil {
		if errors.Is(err, repository.ErrGuestNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toGuestResponse(g))
}

// GetGuestByCode handles GET /api/invitado-codigo/:codigo. The lookup
// is case-insensitive.
func (h *PublicHandler) GetGuestByCode(c echo.Context) error {
	code := ledger.NormalizeCode(c.Param("codigo"))
	if code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid code"})
	}
	g, err := h.Guests.GetByCode(c.Request().Context(), code)
	if err != nil {
		if errors.Is(err, repository.ErrGuestNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toGuestResponse(g))
}

// SubmitRSVP handles POST /api/invitado/:uuid/rsvp. This is the only
// transition available to the public actor and it may be invoked
// repeatedly to flip a prior decision; no history of earlier
// submissions is kept.
func (h *PublicHandler) SubmitRSVP(c echo.Context) error {
	uuid := strings.TrimSpace(c.Param("uuid"))
	if uuid == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid uuid"})
	}
	var req rsvpReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	answer := strings.ToLower(strings.TrimSpace(req.Confirmacion))
	if answer == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "confirmacion required"})
	}

	ctx := c.Request().Context()
	g, err := h.Guests.GetByUUID(ctx, uuid)
	if err != nil {
		if errors.Is(err, repository.ErrGuestNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	attending := answer == "si"
	if err := ledger.RSVP(g, attending, req.CantidadAdultos, req.CantidadNinos, time.Now().UTC()); err != nil {
		if errors.Is(err, ledger.ErrNegativeCount) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "counts must not be negative"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "rsvp failed"})
	}
	if err := h.Guests.Update(ctx, g); err != nil {
		if errors.Is(err, repository.ErrGuestNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	// Audit trail: failures here must never fail the RSVP itself.
	ev := queue.RSVPSubmittedEvent{
		GuestID:         g.ID,
		UUID:            g.UUID,
		Codigo:          g.Code,
		Nombres:         g.DisplayName,
		Estado:          string(g.Status),
		CantidadAdultos: g.ConfirmedAdults,
		CantidadNinos:   g.ConfirmedChildren,
		SubmittedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		pctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue_publisher.PublishRSVPSubmitted(pctx, ev)
	}()

	return c.JSON(http.StatusOK, toGuestResponse(g))
}

// GetEvent handles GET /api/evento and returns the event document as-is.
func (h *PublicHandler) GetEvent(c echo.Context) error {
	doc, err := h.Events.Load()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load event failed"})
	}
	return c.JSON(http.StatusOK, doc)
}

// GetFullPayload handles GET /api/datos-completos/:uuid. It bundles the
// event document with the invitation's own guest record so the frontend
// renders with a single request.
func (h *PublicHandler) GetFullPayload(c echo.Context) error {
	uuid := strings.TrimSpace(c.Param("uuid"))
	if uuid == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid uuid"})
	}
	g, err := h.Guests.GetByUUID(c.Request().Context(), uuid)
	if err != nil {
		if errors.Is(err, repository.ErrGuestNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	doc, err := h.Events.Load()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load event failed"})
	}
	padres, _ := doc["padres"].(map[string]any)
	if padres == nil {
		padres = map[string]any{}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"evento":    doc,
		"invitados": []guestResponse{toGuestResponse(g)},
		"padres":    padres,
	})
}

// Status handles GET /api/status.
func (h *PublicHandler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "API de Invitaciones Digitales activa",
		"version": "1.0.0",
	})
}
