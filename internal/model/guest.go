package model

import "time"

// Status enumerates the RSVP state of a guest party.  The values are
// the exact strings stored in the `invitados.estado` column and sent
// over the wire; the deployed frontend speaks Spanish, so the enum
// values stay Spanish while Go identifiers are English.
type Status string

const (
    StatusPending   Status = "pendiente"  // invited, has not answered yet
    StatusConfirmed Status = "confirmado" // confirmed attendance
    StatusDeclined  Status = "rechazado"  // declined attendance
)

// ParseStatus validates a raw status string and returns the matching
// Status value.  The second return value is false for unknown input.
func ParseStatus(raw string) (Status, bool) {
    switch Status(raw) {
    case StatusPending, StatusConfirmed, StatusDeclined:
        return Status(raw), true
    }
    return "", false
}

// Guest represents an invited party (one or more people) as stored in
// the `invitados` table.  Capacity is tracked separately for adults and
// children; person totals are always derived from those two fields and
// never stored on their own.
//
// Fields:
//  ID              – primary key identifier, never reused.
//  UUID            – globally unique opaque token used for public lookup.
//  Code            – human-readable unique code (e.g. FM2026-003), stored uppercase.
//  DisplayName     – free-text label for the party.
//  MaxAdults       – adult seat ceiling set by the admin.
//  MaxChildren     – child seat ceiling set by the admin.
//  ConfirmedAdults – adults currently confirmed (0..MaxAdults).
//  ConfirmedChildren – children currently confirmed (0..MaxChildren).
//  Status          – RSVP state (pendiente, confirmado, rechazado).
//  Note            – free-text message tied to the last transition (nullable).
//  ConfirmedAt     – when the party last confirmed or declined (nullable).
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – timestamp of last mutation.
type Guest struct {
    ID                uint64     // invitados.id
    UUID              string     // invitados.uuid
    Code              string     // invitados.codigo
    DisplayName       string     // invitados.nombres
    MaxAdults         int        // invitados.max_adultos
    MaxChildren       int        // invitados.max_ninos
    ConfirmedAdults   int        // invitados.cantidad_adultos
    ConfirmedChildren int        // invitados.cantidad_ninos
    Status            Status     // invitados.estado
    Note              *string    // invitados.confirmacion (nullable)
    ConfirmedAt       *time.Time // invitados.fecha_confirmacion (nullable)
    CreatedAt         time.Time  // invitados.created_at
    UpdatedAt         time.Time  // invitados.updated_at
}

// MaxPersons is the total seat ceiling for the party.
func (g *Guest) MaxPersons() int { return g.MaxAdults + g.MaxChildren }

// ConfirmedPersons is the total number of people currently confirmed.
func (g *Guest) ConfirmedPersons() int { return g.ConfirmedAdults + g.ConfirmedChildren }
