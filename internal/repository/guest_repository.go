// Guest persistence. All decision logic (state transitions, clamping,
// code allocation) lives in the ledger package; this repository only
// moves rows in and out of the `invitados` table.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/rfuentes/event-invitation/internal/model"
)

// GuestRepo encapsulates all database queries related to guests. It
// depends on a sql.DB connection which should be configured elsewhere.
type GuestRepo struct {
	db *sql.DB
}

// NewGuestRepo constructs a GuestRepo with the provided DB handle. This
// function allows dependency injection of the database in tests and at
// startup.
func NewGuestRepo(db *sql.DB) *GuestRepo {
	return &GuestRepo{db: db}
}

const guestCols = `id, uuid, codigo, nombres, max_adultos, max_ninos,
	cantidad_adultos, cantidad_ninos, estado, confirmacion,
	fecha_confirmacion, created_at, updated_at`

type guestScanner interface {
	Scan(dest ...any) error
}

func scanGuest(sc guestScanner, g *model.Guest) error {
	var (
		note        sql.NullString
		confirmedAt sql.NullTime
		status      string
	)
	if err := sc.Scan(&g.ID, &g.UUID, &g.Code, &g.DisplayName,
		&g.MaxAdults, &g.MaxChildren, &g.ConfirmedAdults, &g.ConfirmedChildren,
		&status, &note, &confirmedAt, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return err
	}
	g.Status = model.Status(status)
	if note.Valid {
		n := note.String
		g.Note = &n
	} else {
		g.Note = nil
	}
	if confirmedAt.Valid {
		t := confirmedAt.Time
		g.ConfirmedAt = &t
	} else {
		g.ConfirmedAt = nil
	}
	return nil
}

// Create inserts a new guest. On success the guest's ID, CreatedAt and
// UpdatedAt fields are populated from the stored row. A duplicate code
// or uuid yields ErrCodeExists.
func (r *GuestRepo) Create(ctx context.Context, g *model.Guest) error {
	const qInsert = `INSERT INTO invitados
		(uuid, codigo, nombres, max_adultos, max_ninos, cantidad_adultos, cantidad_ninos, estado)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert,
		g.UUID, g.Code, g.DisplayName, g.MaxAdults, g.MaxChildren,
		g.ConfirmedAdults, g.ConfirmedChildren, string(g.Status))
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrCodeExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)

	// Follow-up SELECT to populate default timestamp fields.
	return r.reload(ctx, g)
}

// GetByID fetches a guest by its numeric id. Returns ErrGuestNotFound
// when no row matches.
func (r *GuestRepo) GetByID(ctx context.Context, id uint64) (*model.Guest, error) {
	const q = `SELECT ` + guestCols + ` FROM invitados WHERE id = ? LIMIT 1`
	var g model.Guest
	if err := scanGuest(r.db.QueryRowContext(ctx, q, id), &g); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	return &g, nil
}

// GetByUUID fetches a guest by its public opaque token.
func (r *GuestRepo) GetByUUID(ctx context.Context, uuid string) (*model.Guest, error) {
	const q = `SELECT ` + guestCols + ` FROM invitados WHERE uuid = ? LIMIT 1`
	var g model.Guest
	if err := scanGuest(r.db.QueryRowContext(ctx, q, uuid), &g); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	return &g, nil
}

// GetByCode fetches a guest by its human-readable code. Comparison is
// case-insensitive; callers are expected to pass an already uppercased
// value but the query normalizes the stored side as well.
func (r *GuestRepo) GetByCode(ctx context.Context, code string) (*model.Guest, error) {
	const q = `SELECT ` + guestCols + ` FROM invitados WHERE UPPER(codigo) = ? LIMIT 1`
	var g model.Guest
	if err := scanGuest(r.db.QueryRowContext(ctx, q, strings.ToUpper(code)), &g); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	return &g, nil
}

// ListAll returns every guest ordered by id.
func (r *GuestRepo) ListAll(ctx context.Context) ([]*model.Guest, error) {
	const q = `SELECT ` + guestCols + ` FROM invitados ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Guest
	for rows.Next() {
		g := new(model.Guest)
		if err := scanGuest(rows, g); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// LastCode returns the most recently assigned code under the given
// prefix, or an empty string when none exists yet. It feeds the
// sequential code allocator; concurrent creates may race here, the
// unique index on `codigo` is the safety net.
func (r *GuestRepo) LastCode(ctx context.Context, prefix string) (string, error) {
	const q = `SELECT codigo FROM invitados WHERE codigo LIKE CONCAT(?, '-%') ORDER BY id DESC LIMIT 1`
	var code string
	if err := r.db.QueryRowContext(ctx, q, prefix).Scan(&code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return code, nil
}

// Update writes all mutable guest fields back to the database in a
// single statement and refreshes the in-memory record with the stored
// timestamps. Returns ErrGuestNotFound when the row no longer exists.
func (r *GuestRepo) Update(ctx context.Context, g *model.Guest) error {
	const q = `UPDATE invitados
		SET nombres = ?, max_adultos = ?, max_ninos = ?,
		    cantidad_adultos = ?, cantidad_ninos = ?, estado = ?,
		    confirmacion = ?, fecha_confirmacion = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`
	var note sql.NullString
	if g.Note != nil {
		note = sql.NullString{String: *g.Note, Valid: true}
	}
	var confirmedAt sql.NullTime
	if g.ConfirmedAt != nil {
		confirmedAt = sql.NullTime{Time: *g.ConfirmedAt, Valid: true}
	}
	if _, err := r.db.ExecContext(ctx, q,
		g.DisplayName, g.MaxAdults, g.MaxChildren,
		g.ConfirmedAdults, g.ConfirmedChildren, string(g.Status),
		note, confirmedAt, g.ID); err != nil {
		return err
	}
	return r.reload(ctx, g)
}

// Delete removes a guest permanently. There are no dependent entities,
// so no cascade is needed. Returns ErrGuestNotFound when the id does
// not exist.
func (r *GuestRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM invitados WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrGuestNotFound
	}
	return nil
}

// GuestStats aggregates read-only attendance numbers for the admin
// dashboard. Confirmed adult/child totals are summed only over
// confirmed guests; pending and declined parties contribute zero even
// if their stored counts are nonzero.
type GuestStats struct {
	Total             int
	Confirmed         int
	Pending           int
	Declined          int
	ConfirmedAdults   int
	ConfirmedChildren int
}

// Stats computes the aggregate statistics in a single query.
func (r *GuestRepo) Stats(ctx context.Context) (GuestStats, error) {
	const q = `SELECT COUNT(*),
		COALESCE(SUM(estado = 'confirmado'), 0),
		COALESCE(SUM(estado = 'pendiente'), 0),
		COALESCE(SUM(estado = 'rechazado'), 0),
		COALESCE(SUM(CASE WHEN estado = 'confirmado' THEN cantidad_adultos ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN estado = 'confirmado' THEN cantidad_ninos ELSE 0 END), 0)
		FROM invitados`
	var s GuestStats
	err := r.db.QueryRowContext(ctx, q).Scan(&s.Total, &s.Confirmed, &s.Pending,
		&s.Declined, &s.ConfirmedAdults, &s.ConfirmedChildren)
	return s, err
}

func (r *GuestRepo) reload(ctx context.Context, g *model.Guest) error {
	const q = `SELECT ` + guestCols + ` FROM invitados WHERE id = ? LIMIT 1`
	if err := scanGuest(r.db.QueryRowContext(ctx, q, g.ID), g); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrGuestNotFound
		}
		return err
	}
	return nil
}
