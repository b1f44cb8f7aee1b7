package repository

// Helpers shared by the child-collection repositories (lineup, schedule,
// materials, packing, setlist). The pack save path reconciles each
// collection by set difference: load existing IDs, delete the ones the
// client no longer submits, update the ones it does, insert the rest.
// The table name is always a compile-time constant supplied by the
// calling repository, never user input.

import (
	"context"
	"database/sql"
	"strings"
)

// childIDsTx returns the set of row IDs a gig currently owns in the given
// table.
func childIDsTx(ctx context.Context, tx *sql.Tx, table string, gigID uint64) (map[uint64]struct{}, error) {
	rows, err := tx.QueryContext(ctx, "SELECT id FROM "+table+" WHERE gig_id = ?", gigID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[uint64]struct{})
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

// deleteChildByIDsTx deletes the given rows from table, constrained to
// the gig so a stray ID can never touch another pack. Empty input is a
// no-op.
func deleteChildByIDsTx(ctx context.Context, tx *sql.Tx, table string, gigID uint64, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, 0, len(ids)+1)
	args = append(args, gigID)
	for _, id := range ids {
		args = append(args, id)
	}
	_, err := tx.ExecContext(ctx,
		"DELETE FROM "+table+" WHERE gig_id = ? AND id IN ("+placeholders+")", args...)
	return err
}
