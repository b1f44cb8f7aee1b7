package repository

import (
	"context"
	"database/sql"

	"github.com/bareloved/gigmaster-sub001/internal/model"
)

// LineupRepo manages persistence for lineup roles.
type LineupRepo struct {
	db *sql.DB
}

func NewLineupRepo(db *sql.DB) *LineupRepo { return &LineupRepo{db: db} }

// ListByGig returns the lineup of a gig ordered by sort index.
func (r *LineupRepo) ListByGig(ctx context.Context, gigID uint64) ([]model.LineupRole, error) {
	const q = `SELECT id, gig_id, name, member_name, contact_id, fee_cents, sort_index, created_at, updated_at
	           FROM lineup_roles WHERE gig_id = ? ORDER BY sort_index, id`
	rows, err := r.db.QueryContext(ctx, q, gigID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.LineupRole{}
	for rows.Next() {
		var lr model.LineupRole
		if err := rows.Scan(&lr.ID, &lr.GigID, &lr.Name, &lr.MemberName, &lr.ContactID,
			&lr.FeeCents, &lr.SortIndex, &lr.CreatedAt, &lr.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, lr)
	}
	return out, rows.Err()
}

// IDsByGigTx returns the IDs of the gig's current lineup roles.
func (r *LineupRepo) IDsByGigTx(ctx context.Context, tx *sql.Tx, gigID uint64) (map[uint64]struct{}, error) {
	return childIDsTx(ctx, tx, "lineup_roles", gigID)
}

// DeleteByIDsTx removes the given lineup roles from the gig.
func (r *LineupRepo) DeleteByIDsTx(ctx context.Context, tx *sql.Tx, gigID uint64, ids []uint64) error {
	return deleteChildByIDsTx(ctx, tx, "lineup_roles", gigID, ids)
}

// InsertTx inserts a new lineup role and populates its generated ID.
func (r *LineupRepo) InsertTx(ctx context.Context, tx *sql.Tx, lr *model.LineupRole) error {
	const q = `INSERT INTO lineup_roles (gig_id, name, member_name, contact_id, fee_cents, sort_index)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, lr.GigID, lr.Name, lr.MemberName, lr.ContactID, lr.FeeCents, lr.SortIndex)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	lr.ID = uint64(id)
	return nil
}

// UpdateTx rewrites an existing lineup role in place.
func (r *LineupRepo) UpdateTx(ctx context.Context, tx *sql.Tx, lr *model.LineupRole) error {
	const q = `UPDATE lineup_roles
	           SET name = ?, member_name = ?, contact_id = ?, fee_cents = ?, sort_index = ?,
	               updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND gig_id = ?`
	_, err := tx.ExecContext(ctx, q, lr.Name, lr.MemberName, lr.ContactID, lr.FeeCents, lr.SortIndex, lr.ID, lr.GigID)
	return err
}

// ClearContactRefs detaches a contact from every lineup role on the
// owner's gigs. Called when a contact is deleted; the roles themselves
// survive.
func (r *LineupRepo) ClearContactRefs(ctx context.Context, ownerID, contactID uint64) error {
	const q = `UPDATE lineup_roles lr
	           JOIN gigs g ON g.id = lr.gig_id
	           SET lr.contact_id = NULL, lr.updated_at = CURRENT_TIMESTAMP
	           WHERE lr.contact_id = ? AND g.owner_id = ?`
	_, err := r.db.ExecContext(ctx, q, contactID, ownerID)
	return err
}
