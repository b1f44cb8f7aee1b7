// Package repository contains data access logic separated from HTTP
// handlers. This file defines repository methods for gigs, the parent
// rows of every gig pack. Child collections (lineup, schedule, materials,
// packing, setlist, share tokens) live in their own repositories; the
// whole-gig delete here removes them in one transaction.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/bareloved/gigmaster-sub001/internal/model"
)

// ErrGigNotFound is returned when a gig cannot be found in the DB.
var ErrGigNotFound = errors.New("gig not found")

// GigRepo encapsulates all database queries related to gigs.
type GigRepo struct {
	db *sql.DB
}

// NewGigRepo constructs a GigRepo with the provided DB handle.
func NewGigRepo(db *sql.DB) *GigRepo {
	return &GigRepo{db: db}
}

// DB exposes the underlying sql.DB. It allows the pack saver to begin
// transactions spanning multiple repositories.
func (r *GigRepo) DB() *sql.DB {
	return r.db
}

const gigCols = "id, owner_id, title, venue, city, starts_at, ends_at, status, notes, created_at, updated_at"

func scanGig(row interface{ Scan(...any) error }, g *model.Gig) error {
	return row.Scan(&g.ID, &g.OwnerID, &g.Title, &g.Venue, &g.City,
		&g.StartsAt, &g.EndsAt, &g.Status, &g.Notes, &g.CreatedAt, &g.UpdatedAt)
}

// Create inserts a new gig. On success the ID, status default and
// timestamp fields are populated by reading the row back.
func (r *GigRepo) Create(ctx context.Context, g *model.Gig) error {
	const qInsert = `INSERT INTO gigs (owner_id, title, venue, city, starts_at, ends_at, status, notes)
	                 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert,
		g.OwnerID, g.Title, g.Venue, g.City, g.StartsAt, g.EndsAt, g.Status, g.Notes)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)

	return scanGig(r.db.QueryRowContext(ctx, "SELECT "+gigCols+" FROM gigs WHERE id = ?", g.ID), g)
}

// GetByID fetches a gig by its ID regardless of owner. It returns
// ErrGigNotFound if no row is found. Used by the shared-link path where
// ownership is established by the token, not the caller.
func (r *GigRepo) GetByID(ctx context.Context, id uint64) (*model.Gig, error) {
	var g model.Gig
	if err := scanGig(r.db.QueryRowContext(ctx, "SELECT "+gigCols+" FROM gigs WHERE id = ?", id), &g); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGigNotFound
		}
		return nil, err
	}
	return &g, nil
}

// GetByIDAndOwner fetches a gig by id but only if it belongs to the
// specified owner. If the gig doesn't exist or is owned by someone else,
// ErrGigNotFound is returned.
func (r *GigRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.Gig, error) {
	var g model.Gig
	err := scanGig(r.db.QueryRowContext(ctx,
		"SELECT "+gigCols+" FROM gigs WHERE id = ? AND owner_id = ?", id, ownerID), &g)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGigNotFound
		}
		return nil, err
	}
	return &g, nil
}

// ListByOwner returns all gigs for a specific owner ordered by start time.
func (r *GigRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]*model.Gig, error) {
	const q = "SELECT " + gigCols + " FROM gigs WHERE owner_id = ? ORDER BY starts_at, id"
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Gig
	for rows.Next() {
		g := new(model.Gig)
		if err := scanGig(rows, g); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateMeta updates gig metadata (title, venue, city, times, status,
// notes) if the gig belongs to the provided owner. It returns
// sql.ErrNoRows when the gig is missing or not owned. The MySQL driver
// reports rows changed, not rows matched, so zero affected rows can also
// mean the submitted values were identical; an existence re-check tells
// the two cases apart and an unchanged row is a successful no-op.
func (r *GigRepo) UpdateMeta(ctx context.Context, g *model.Gig) error {
	const q = `UPDATE gigs
	           SET title = ?, venue = ?, city = ?, starts_at = ?, ends_at = ?, status = ?, notes = ?,
	               updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND owner_id = ?`
	res, err := r.db.ExecContext(ctx, q,
		g.Title, g.Venue, g.City, g.StartsAt, g.EndsAt, g.Status, g.Notes, g.ID, g.OwnerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	var one int
	if err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM gigs WHERE id = ? AND owner_id = ? LIMIT 1", g.ID, g.OwnerID).Scan(&one); err != nil {
		return err // sql.ErrNoRows: missing or foreign
	}
	return nil
}

// UpdateMetaTx is UpdateMeta inside the caller's transaction. The pack
// saver uses it so metadata and child reconciliation commit together.
func (r *GigRepo) UpdateMetaTx(ctx context.Context, tx *sql.Tx, g *model.Gig) error {
	const q = `UPDATE gigs
	           SET title = ?, venue = ?, city = ?, starts_at = ?, ends_at = ?, status = ?, notes = ?,
	               updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND owner_id = ?`
	res, err := tx.ExecContext(ctx, q,
		g.Title, g.Venue, g.City, g.StartsAt, g.EndsAt, g.Status, g.Notes, g.ID, g.OwnerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	var one int
	if err := tx.QueryRowContext(ctx,
		"SELECT 1 FROM gigs WHERE id = ? AND owner_id = ? LIMIT 1", g.ID, g.OwnerID).Scan(&one); err != nil {
		return err
	}
	return nil
}

// TouchTx bumps updated_at without changing metadata. Used by paths that
// only modify child rows (e.g. toggling a packing item).
func (r *GigRepo) TouchTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	_, err := tx.ExecContext(ctx, "UPDATE gigs SET updated_at = CURRENT_TIMESTAMP WHERE id = ?", id)
	return err
}

// DeleteByIDAndOwner removes a gig and all dependent records (lineup
// roles, schedule items, materials, packing items, setlist sections and
// songs, share tokens) provided it belongs to the specified owner. If the
// gig does not exist, sql.ErrNoRows is returned. If the gig exists but is
// owned by a different user, ErrForbidden is returned. The deletion
// occurs within a transaction to maintain integrity.
func (r *GigRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()
	// Verify gig exists and ownership
	var dbOwnerID uint64
	if err = tx.QueryRowContext(ctx, "SELECT owner_id FROM gigs WHERE id = ?", id).Scan(&dbOwnerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sql.ErrNoRows
		}
		return err
	}
	if dbOwnerID != ownerID {
		return ErrForbidden
	}
	// Songs first, then their sections; the rest are flat children of the gig.
	for _, q := range []string{
		"DELETE FROM setlist_songs WHERE gig_id = ?",
		"DELETE FROM setlist_sections WHERE gig_id = ?",
		"DELETE FROM lineup_roles WHERE gig_id = ?",
		"DELETE FROM schedule_items WHERE gig_id = ?",
		"DELETE FROM materials WHERE gig_id = ?",
		"DELETE FROM packing_items WHERE gig_id = ?",
		"DELETE FROM share_tokens WHERE gig_id = ?",
		"DELETE FROM gigs WHERE id = ?",
	} {
		if _, err = tx.ExecContext(ctx, q, id); err != nil {
			return err
		}
	}
	return nil
}

// UpcomingByOwner returns gigs starting within the given window, used by
// the dashboard-style listing. Cancelled and archived gigs are excluded.
func (r *GigRepo) UpcomingByOwner(ctx context.Context, ownerID uint64, until time.Time) ([]*model.Gig, error) {
	const q = "SELECT " + gigCols + ` FROM gigs
	           WHERE owner_id = ? AND starts_at >= NOW() AND starts_at <= ?
	             AND status IN ('DRAFT','CONFIRMED')
	           ORDER BY starts_at, id`
	rows, err := r.db.QueryContext(ctx, q, ownerID, until)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Gig
	for rows.Next() {
		g := new(model.Gig)
		if err := scanGig(rows, g); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
