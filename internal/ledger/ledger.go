// Package ledger implements the guest attendance state machine and the
// capacity accounting rules.  All functions here mutate in-memory
// model.Guest values and perform no I/O, so handlers stay thin and the
// transition rules can be tested without a database.
package ledger

import (
    "errors"
    "fmt"
    "strconv"
    "strings"
    "time"

    "github.com/rfuentes/event-invitation/internal/model"
)

// Fixed notes attached to RSVP transitions.  The strings are shown
// verbatim by the frontend and must not change.
const (
    NoteAttending = "Si, asistiremos."
    NoteDeclined  = "No podremos asistir"
)

// ErrInvalidStatus is returned when a status override names an unknown
// state.  Handlers should translate this into an HTTP 400 response.
var ErrInvalidStatus = errors.New("invalid status")

// ErrNegativeCount is returned when a requested or configured seat
// count is negative.  Handlers should translate this into HTTP 400.
var ErrNegativeCount = errors.New("negative count")

// ErrEmptyName is returned when a guest name is missing or blank.
var ErrEmptyName = errors.New("empty name")

// NewGuest builds a fresh guest party in its initial state: pending,
// with confirmed counts defaulted to the configured ceilings so the
// invitation displays the full allotment before the party answers.
func NewGuest(displayName string, maxAdults, maxChildren int, code, uuid string) (model.Guest, error) {
    displayName = strings.TrimSpace(displayName)
    if displayName == "" {
        return model.Guest{}, ErrEmptyName
    }
    if maxAdults < 0 || maxChildren < 0 {
        return model.Guest{}, ErrNegativeCount
    }
    return model.Guest{
        UUID:              uuid,
        Code:              NormalizeCode(code),
        DisplayName:       displayName,
        MaxAdults:         maxAdults,
        MaxChildren:       maxChildren,
        ConfirmedAdults:   maxAdults,
        ConfirmedChildren: maxChildren,
        Status:            model.StatusPending,
    }, nil
}

// RSVP applies the public yes/no decision to a guest.  On "yes" the
// requested counts are clamped to the party's ceilings; omitted counts
// default to the full allotment.  On "no" both counts drop to zero.
// The confirmation timestamp is set in both branches.  Negative
// requested counts are rejected rather than clamped.
func RSVP(g *model.Guest, attending bool, adults, children *int, now time.Time) error {
    if adults != nil && *adults < 0 {
        return ErrNegativeCount
    }
    if children != nil && *children < 0 {
        return ErrNegativeCount
    }
    if attending {
        g.Status = model.StatusConfirmed
        note := NoteAttending
        g.Note = &note
        if adults != nil {
            g.ConfirmedAdults = clamp(*adults, g.MaxAdults)
        } else {
            g.ConfirmedAdults = g.MaxAdults
        }
        if children != nil {
            g.ConfirmedChildren = clamp(*children, g.MaxChildren)
        } else {
            g.ConfirmedChildren = g.MaxChildren
        }
    } else {
        g.Status = model.StatusDeclined
        note := NoteDeclined
        g.Note = &note
        g.ConfirmedAdults = 0
        g.ConfirmedChildren = 0
    }
    t := now
    g.ConfirmedAt = &t
    return nil
}

// Patch carries the optional fields of an admin update.  Nil means
// "leave unchanged".
type Patch struct {
    DisplayName *string
    MaxAdults   *int
    MaxChildren *int
    Status      *string
}

// ApplyPatch applies an admin update to a guest.  Capacity changes on a
// pending party also reset the matching confirmed count so the
// displayed allotment tracks the new ceiling.  A status value is an
// unconditional override: any state is reachable from any state, with
// side effects mirroring the public RSVP action.
func ApplyPatch(g *model.Guest, p Patch, now time.Time) error {
    if p.DisplayName != nil {
        name := strings.TrimSpace(*p.DisplayName)
        if name == "" {
            return ErrEmptyName
        }
        g.DisplayName = name
    }
    if p.MaxAdults != nil {
        if *p.MaxAdults < 0 {
            return ErrNegativeCount
        }
        g.MaxAdults = *p.MaxAdults
        if g.Status == model.StatusPending {
            g.ConfirmedAdults = *p.MaxAdults
        }
    }
    if p.MaxChildren != nil {
        if *p.MaxChildren < 0 {
            return ErrNegativeCount
        }
        g.MaxChildren = *p.MaxChildren
        if g.Status == model.StatusPending {
            g.ConfirmedChildren = *p.MaxChildren
        }
    }
    if p.Status != nil {
        next, ok := model.ParseStatus(*p.Status)
        if !ok {
            return ErrInvalidStatus
        }
        g.Status = next
        switch next {
        case model.StatusPending:
            // Back to "not answered yet": clear the answer and show the
            // full allotment again.
            g.Note = nil
            g.ConfirmedAt = nil
            g.ConfirmedAdults = g.MaxAdults
            g.ConfirmedChildren = g.MaxChildren
        case model.StatusConfirmed:
            // Admin confirmation assumes full capacity, unlike the
            // public RSVP which allows partial counts.
            if g.Note == nil {
                note := NoteAttending
                g.Note = &note
            }
            g.ConfirmedAdults = g.MaxAdults
            g.ConfirmedChildren = g.MaxChildren
            if g.ConfirmedAt == nil {
                t := now
                g.ConfirmedAt = &t
            }
        case model.StatusDeclined:
            if g.Note == nil {
                note := NoteDeclined
                g.Note = &note
            }
            g.ConfirmedAdults = 0
            g.ConfirmedChildren = 0
        }
    }
    return nil
}

// NextCode derives the next auto-assigned code from the last code under
// the same prefix.  The numeric suffix is incremented and zero-padded
// to three digits.  When there is no previous code, or its suffix does
// not parse, numbering restarts at 1 rather than failing the request.
func NextCode(prefix, last string) string {
    n := 1
    if last != "" {
        if i := strings.LastIndex(last, "-"); i >= 0 {
            if v, err := strconv.Atoi(last[i+1:]); err == nil && v > 0 {
                n = v + 1
            }
        }
    }
    return fmt.Sprintf("%s-%03d", prefix, n)
}

// NormalizeCode uppercases and trims a guest code so lookups are
// case-insensitive.
func NormalizeCode(code string) string {
    return strings.ToUpper(strings.TrimSpace(code))
}

func clamp(v, max int) int {
    if v > max {
        return max
    }
    return v
}
