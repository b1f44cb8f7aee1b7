package repository

import (
	"context"
	"database/sql"

	"github.com/bareloved/gigmaster-sub001/internal/model"
)

// ScheduleRepo manages persistence for run-sheet entries.
type ScheduleRepo struct {
	db *sql.DB
}

func NewScheduleRepo(db *sql.DB) *ScheduleRepo { return &ScheduleRepo{db: db} }

// ListByGig returns the run sheet of a gig ordered by sort index.
func (r *ScheduleRepo) ListByGig(ctx context.Context, gigID uint64) ([]model.ScheduleItem, error) {
	const q = `SELECT id, gig_id, label, starts_at, ends_at, location, sort_index
	           FROM schedule_items WHERE gig_id = ? ORDER BY sort_index, id`
	rows, err := r.db.QueryContext(ctx, q, gigID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ScheduleItem{}
	for rows.Next() {
		var si model.ScheduleItem
		if err := rows.Scan(&si.ID, &si.GigID, &si.Label, &si.StartsAt, &si.EndsAt,
			&si.Location, &si.SortIndex); err != nil {
			return nil, err
		}
		out = append(out, si)
	}
	return out, rows.Err()
}

func (r *ScheduleRepo) IDsByGigTx(ctx context.Context, tx *sql.Tx, gigID uint64) (map[uint64]struct{}, error) {
	return childIDsTx(ctx, tx, "schedule_items", gigID)
}

func (r *ScheduleRepo) DeleteByIDsTx(ctx context.Context, tx *sql.Tx, gigID uint64, ids []uint64) error {
	return deleteChildByIDsTx(ctx, tx, "schedule_items", gigID, ids)
}

func (r *ScheduleRepo) InsertTx(ctx context.Context, tx *sql.Tx, si *model.ScheduleItem) error {
	const q = `INSERT INTO schedule_items (gig_id, label, starts_at, ends_at, location, sort_index)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, si.GigID, si.Label, si.StartsAt, si.EndsAt, si.Location, si.SortIndex)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	si.ID = uint64(id)
	return nil
}

func (r *ScheduleRepo) UpdateTx(ctx context.Context, tx *sql.Tx, si *model.ScheduleItem) error {
	const q = `UPDATE schedule_items
	           SET label = ?, starts_at = ?, ends_at = ?, location = ?, sort_index = ?
	           WHERE id = ? AND gig_id = ?`
	_, err := tx.ExecContext(ctx, q, si.Label, si.StartsAt, si.EndsAt, si.Location, si.SortIndex, si.ID, si.GigID)
	return err
}
