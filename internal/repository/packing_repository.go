package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bareloved/gigmaster-sub001/internal/model"
)

// PackingRepo manages persistence for packing checklist entries.
type PackingRepo struct {
	db *sql.DB
}

func NewPackingRepo(db *sql.DB) *PackingRepo { return &PackingRepo{db: db} }

// ListByGig returns the checklist of a gig ordered by sort index.
func (r *PackingRepo) ListByGig(ctx context.Context, gigID uint64) ([]model.PackingItem, error) {
	const q = `SELECT id, gig_id, label, quantity, packed, sort_index
	           FROM packing_items WHERE gig_id = ? ORDER BY sort_index, id`
	rows, err := r.db.QueryContext(ctx, q, gigID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.PackingItem{}
	for rows.Next() {
		var pi model.PackingItem
		if err := rows.Scan(&pi.ID, &pi.GigID, &pi.Label, &pi.Quantity, &pi.Packed, &pi.SortIndex); err != nil {
			return nil, err
		}
		out = append(out, pi)
	}
	return out, rows.Err()
}

func (r *PackingRepo) IDsByGigTx(ctx context.Context, tx *sql.Tx, gigID uint64) (map[uint64]struct{}, error) {
	return childIDsTx(ctx, tx, "packing_items", gigID)
}

func (r *PackingRepo) DeleteByIDsTx(ctx context.Context, tx *sql.Tx, gigID uint64, ids []uint64) error {
	return deleteChildByIDsTx(ctx, tx, "packing_items", gigID, ids)
}

func (r *PackingRepo) InsertTx(ctx context.Context, tx *sql.Tx, pi *model.PackingItem) error {
	const q = `INSERT INTO packing_items (gig_id, label, quantity, packed, sort_index)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, pi.GigID, pi.Label, pi.Quantity, pi.Packed, pi.SortIndex)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	pi.ID = uint64(id)
	return nil
}

func (r *PackingRepo) UpdateTx(ctx context.Context, tx *sql.Tx, pi *model.PackingItem) error {
	const q = `UPDATE packing_items
	           SET label = ?, quantity = ?, packed = ?, sort_index = ?
	           WHERE id = ? AND gig_id = ?`
	_, err := tx.ExecContext(ctx, q, pi.Label, pi.Quantity, pi.Packed, pi.SortIndex, pi.ID, pi.GigID)
	return err
}

// SetPackedTx flips the packed flag of a single checklist entry inside
// the caller's transaction. Ownership is enforced through the join;
// sql.ErrNoRows is returned when the item does not exist or belongs to
// someone else. The caller bumps the parent gig's updated_at and commits.
func (r *PackingRepo) SetPackedTx(ctx context.Context, tx *sql.Tx, itemID, ownerID uint64, packed bool) (*model.PackingItem, error) {
	const q = `UPDATE packing_items pi
	           JOIN gigs g ON g.id = pi.gig_id
	           SET pi.packed = ?
	           WHERE pi.id = ? AND g.owner_id = ?`
	res, err := tx.ExecContext(ctx, q, packed, itemID, ownerID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Either missing/foreign, or the flag already had the requested
		// value. Re-check so idempotent toggles still return the row.
		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM packing_items pi JOIN gigs g ON g.id = pi.gig_id
			 WHERE pi.id = ? AND g.owner_id = ?)`, itemID, ownerID).Scan(&exists); err != nil {
			return nil, err
		}
		if !exists {
			return nil, sql.ErrNoRows
		}
	}
	var pi model.PackingItem
	err = tx.QueryRowContext(ctx,
		`SELECT id, gig_id, label, quantity, packed, sort_index FROM packing_items WHERE id = ?`,
		itemID).Scan(&pi.ID, &pi.GigID, &pi.Label, &pi.Quantity, &pi.Packed, &pi.SortIndex)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &pi, nil
}
