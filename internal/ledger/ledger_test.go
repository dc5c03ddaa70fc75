package ledger

import (
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/rfuentes/event-invitation/internal/model"
)

func intp(v int) *int       { return &v }
func strp(s string) *string { return &s }

func pendingGuest(maxAdults, maxChildren int) model.Guest {
	g, err := NewGuest("Juan Perez y Maria Garcia", maxAdults, maxChildren, "FM2026-002", "uuid-2")
	if err != nil {
		panic(err)
	}
	return g
}

func TestNewGuestDefaults(t *testing.T) {
	g, err := NewGuest("  Carlos Rodriguez ", 2, 1, "fm2026-003", "uuid-3")
	if err != nil {
		t.Fatalf("new guest: %v", err)
	}
	if g.Status != model.StatusPending {
		t.Fatalf("expected status %q, got %q", model.StatusPending, g.Status)
	}
	if g.ConfirmedAdults != 2 || g.ConfirmedChildren != 1 {
		t.Fatalf("expected confirmed counts defaulted to max, got %d/%d", g.ConfirmedAdults, g.ConfirmedChildren)
	}
	if g.Code != "FM2026-003" {
		t.Fatalf("expected normalized code FM2026-003, got %q", g.Code)
	}
	if g.DisplayName != "Carlos Rodriguez" {
		t.Fatalf("expected trimmed name, got %q", g.DisplayName)
	}
	if g.MaxPersons() != 3 || g.ConfirmedPersons() != 3 {
		t.Fatalf("expected derived persons 3/3, got %d/%d", g.MaxPersons(), g.ConfirmedPersons())
	}
}

func TestNewGuestValidation(t *testing.T) {
	tests := []struct {
		name        string
		displayName string
		maxAdults   int
		maxChildren int
		err         error
	}{
		{name: "blank name", displayName: "   ", maxAdults: 2, err: ErrEmptyName},
		{name: "negative adults", displayName: "Ana", maxAdults: -1, err: ErrNegativeCount},
		{name: "negative children", displayName: "Ana", maxAdults: 1, maxChildren: -2, err: ErrNegativeCount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGuest(tt.displayName, tt.maxAdults, tt.maxChildren, "", "u")
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected error %v, got %v", tt.err, err)
			}
		})
	}
}

func TestRSVPYesClampsToMax(t *testing.T) {
	g := pendingGuest(2, 1)
	now := time.Date(2026, 5, 9, 18, 0, 0, 0, time.UTC)

	if err := RSVP(&g, true, intp(99), intp(5), now); err != nil {
		t.Fatalf("rsvp: %v", err)
	}
	if g.Status != model.StatusConfirmed {
		t.Fatalf("expected status %q, got %q", model.StatusConfirmed, g.Status)
	}
	if g.ConfirmedAdults != 2 || g.ConfirmedChildren != 1 {
		t.Fatalf("expected clamped counts 2/1, got %d/%d", g.ConfirmedAdults, g.ConfirmedChildren)
	}
	if g.Note == nil || *g.Note != NoteAttending {
		t.Fatalf("expected attending note, got %v", g.Note)
	}
	if g.ConfirmedAt == nil || !g.ConfirmedAt.Equal(now) {
		t.Fatalf("expected confirmed_at %v, got %v", now, g.ConfirmedAt)
	}
}

func TestRSVPYesDefaultsOmittedCounts(t *testing.T) {
	// Partial answer: one adult requested, children unspecified.
	g := pendingGuest(2, 1)
	now := time.Now().UTC()

	if err := RSVP(&g, true, intp(1), nil, now); err != nil {
		t.Fatalf("rsvp: %v", err)
	}
	if g.ConfirmedAdults != 1 {
		t.Fatalf("expected 1 confirmed adult, got %d", g.ConfirmedAdults)
	}
	if g.ConfirmedChildren != 1 {
		t.Fatalf("expected children defaulted to max 1, got %d", g.ConfirmedChildren)
	}
	if g.ConfirmedPersons() != 2 {
		t.Fatalf("expected 2 confirmed persons, got %d", g.ConfirmedPersons())
	}
}

func TestRSVPNoZeroesCounts(t *testing.T) {
	// A prior confirmation must not survive a later decline.
	g := pendingGuest(2, 1)
	now := time.Now().UTC()
	if err := RSVP(&g, true, nil, nil, now); err != nil {
		t.Fatalf("rsvp yes: %v", err)
	}

	if err := RSVP(&g, false, intp(2), intp(1), now.Add(time.Hour)); err != nil {
		t.Fatalf("rsvp no: %v", err)
	}
	if g.Status != model.StatusDeclined {
		t.Fatalf("expected status %q, got %q", model.StatusDeclined, g.Status)
	}
	if g.ConfirmedAdults != 0 || g.ConfirmedChildren != 0 {
		t.Fatalf("expected zero counts after decline, got %d/%d", g.ConfirmedAdults, g.ConfirmedChildren)
	}
	if g.Note == nil || *g.Note != NoteDeclined {
		t.Fatalf("expected declined note, got %v", g.Note)
	}
}

func TestRSVPRejectsNegativeCounts(t *testing.T) {
	g := pendingGuest(2, 1)
	if err := RSVP(&g, true, intp(-1), nil, time.Now()); !errors.Is(err, ErrNegativeCount) {
		t.Fatalf("expected ErrNegativeCount, got %v", err)
	}
	if err := RSVP(&g, true, nil, intp(-3), time.Now()); !errors.Is(err, ErrNegativeCount) {
		t.Fatalf("expected ErrNegativeCount, got %v", err)
	}
	if g.Status != model.StatusPending {
		t.Fatalf("guest must be unchanged after rejected rsvp, got status %q", g.Status)
	}
}

func TestApplyPatchCapacityResyncWhilePending(t *testing.T) {
	g := pendingGuest(2, 1)

	if err := ApplyPatch(&g, Patch{MaxAdults: intp(4), MaxChildren: intp(2)}, time.Now()); err != nil {
		t.Fatalf("patch: %v", err)
	}
	if g.MaxAdults != 4 || g.MaxChildren != 2 {
		t.Fatalf("expected ceilings 4/2, got %d/%d", g.MaxAdults, g.MaxChildren)
	}
	if g.ConfirmedAdults != 4 || g.ConfirmedChildren != 2 {
		t.Fatalf("expected pending counts resynced to 4/2, got %d/%d", g.ConfirmedAdults, g.ConfirmedChildren)
	}
}

func TestApplyPatchCapacityKeepsAnsweredCounts(t *testing.T) {
	g := pendingGuest(2, 1)
	if err := RSVP(&g, true, intp(1), intp(0), time.Now()); err != nil {
		t.Fatalf("rsvp: %v", err)
	}

	if err := ApplyPatch(&g, Patch{MaxAdults: intp(4)}, time.Now()); err != nil {
		t.Fatalf("patch: %v", err)
	}
	if g.MaxAdults != 4 {
		t.Fatalf("expected max adults 4, got %d", g.MaxAdults)
	}
	if g.ConfirmedAdults != 1 {
		t.Fatalf("confirmed counts of an answered guest must not change, got %d", g.ConfirmedAdults)
	}
}

func TestApplyPatchStatusOverrides(t *testing.T) {
	now := time.Date(2026, 5, 9, 18, 0, 0, 0, time.UTC)

	t.Run("back to pending clears the answer", func(t *testing.T) {
		g := pendingGuest(2, 1)
		if err := RSVP(&g, true, intp(1), nil, now); err != nil {
			t.Fatalf("rsvp: %v", err)
		}
		if err := ApplyPatch(&g, Patch{Status: strp("pendiente")}, now); err != nil {
			t.Fatalf("patch: %v", err)
		}
		if g.Status != model.StatusPending {
			t.Fatalf("expected pending, got %q", g.Status)
		}
		if g.Note != nil || g.ConfirmedAt != nil {
			t.Fatalf("expected note and confirmed_at cleared, got %v %v", g.Note, g.ConfirmedAt)
		}
		if g.ConfirmedAdults != 2 || g.ConfirmedChildren != 1 {
			t.Fatalf("expected counts reset to max 2/1, got %d/%d", g.ConfirmedAdults, g.ConfirmedChildren)
		}
	})

	t.Run("confirm forces full capacity", func(t *testing.T) {
		g := pendingGuest(3, 2)
		if err := ApplyPatch(&g, Patch{Status: strp("confirmado")}, now); err != nil {
			t.Fatalf("patch: %v", err)
		}
		if g.ConfirmedAdults != 3 || g.ConfirmedChildren != 2 {
			t.Fatalf("expected full capacity 3/2, got %d/%d", g.ConfirmedAdults, g.ConfirmedChildren)
		}
		if g.Note == nil || *g.Note != NoteAttending {
			t.Fatalf("expected default attending note, got %v", g.Note)
		}
		if g.ConfirmedAt == nil {
			t.Fatal("expected confirmed_at to be set")
		}
	})

	t.Run("confirm keeps an existing note and timestamp", func(t *testing.T) {
		g := pendingGuest(2, 0)
		earlier := now.Add(-48 * time.Hour)
		if err := RSVP(&g, false, nil, nil, earlier); err != nil {
			t.Fatalf("rsvp: %v", err)
		}
		if err := ApplyPatch(&g, Patch{Status: strp("confirmado")}, now); err != nil {
			t.Fatalf("patch: %v", err)
		}
		if g.Note == nil || *g.Note != NoteDeclined {
			t.Fatalf("existing note must be preserved, got %v", g.Note)
		}
		if g.ConfirmedAt == nil || !g.ConfirmedAt.Equal(earlier) {
			t.Fatalf("existing confirmed_at must be preserved, got %v", g.ConfirmedAt)
		}
	})

	t.Run("decline zeroes counts", func(t *testing.T) {
		g := pendingGuest(2, 1)
		if err := ApplyPatch(&g, Patch{Status: strp("rechazado")}, now); err != nil {
			t.Fatalf("patch: %v", err)
		}
		if g.ConfirmedAdults != 0 || g.ConfirmedChildren != 0 {
			t.Fatalf("expected zero counts, got %d/%d", g.ConfirmedAdults, g.ConfirmedChildren)
		}
		if g.Note == nil || *g.Note != NoteDeclined {
			t.Fatalf("expected default declined note, got %v", g.Note)
		}
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		g := pendingGuest(2, 1)
		err := ApplyPatch(&g, Patch{Status: strp("maybe")}, now)
		if !errors.Is(err, ErrInvalidStatus) {
			t.Fatalf("expected ErrInvalidStatus, got %v", err)
		}
	})
}

func TestApplyPatchValidation(t *testing.T) {
	g := pendingGuest(2, 1)
	if err := ApplyPatch(&g, Patch{DisplayName: strp("  ")}, time.Now()); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if err := ApplyPatch(&g, Patch{MaxAdults: intp(-2)}, time.Now()); !errors.Is(err, ErrNegativeCount) {
		t.Fatalf("expected ErrNegativeCount, got %v", err)
	}
}

func TestNextCode(t *testing.T) {
	tests := []struct {
		name string
		last string
		want string
	}{
		{name: "no previous code", last: "", want: "FM2026-001"},
		{name: "increments suffix", last: "FM2026-003", want: "FM2026-004"},
		{name: "pads short suffix", last: "FM2026-9", want: "FM2026-010"},
		{name: "grows past padding", last: "FM2026-099", want: "FM2026-100"},
		{name: "unparseable suffix restarts", last: "FM2026-ABC", want: "FM2026-001"},
		{name: "missing separator restarts", last: "FM2026", want: "FM2026-001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextCode("FM2026", tt.last); got != tt.want {
				t.Fatalf("NextCode(FM2026, %q) = %q, want %q", tt.last, got, tt.want)
			}
		})
	}
}

func TestNextCodeSequenceIncreases(t *testing.T) {
	last := ""
	prev := 0
	for i := 0; i < 5; i++ {
		code := NextCode("FM2026", last)
		if !strings.HasPrefix(code, "FM2026-") {
			t.Fatalf("code %q lost its prefix", code)
		}
		n, err := strconv.Atoi(code[strings.LastIndex(code, "-")+1:])
		if err != nil {
			t.Fatalf("suffix of %q: %v", code, err)
		}
		if n <= prev {
			t.Fatalf("expected strictly increasing suffixes, got %d after %d", n, prev)
		}
		prev = n
		last = code
	}
}
