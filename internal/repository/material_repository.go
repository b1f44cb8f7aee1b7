package repository

import (
	"context"
	"database/sql"

	"github.com/bareloved/gigmaster-sub001/internal/model"
)

// MaterialRepo manages persistence for gig materials (links, file
// references and notes).
type MaterialRepo struct {
	db *sql.DB
}

func NewMaterialRepo(db *sql.DB) *MaterialRepo { return &MaterialRepo{db: db} }

// ListByGig returns the materials of a gig ordered by sort index.
func (r *MaterialRepo) ListByGig(ctx context.Context, gigID uint64) ([]model.Material, error) {
	const q = `SELECT id, gig_id, title, kind, url, note, sort_index
	           FROM materials WHERE gig_id = ? ORDER BY sort_index, id`
	rows, err := r.db.QueryContext(ctx, q, gigID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Material{}
	for rows.Next() {
		var m model.Material
		if err := rows.Scan(&m.ID, &m.GigID, &m.Title, &m.Kind, &m.URL, &m.Note, &m.SortIndex); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MaterialRepo) IDsByGigTx(ctx context.Context, tx *sql.Tx, gigID uint64) (map[uint64]struct{}, error) {
	return childIDsTx(ctx, tx, "materials", gigID)
}

func (r *MaterialRepo) DeleteByIDsTx(ctx context.Context, tx *sql.Tx, gigID uint64, ids []uint64) error {
	return deleteChildByIDsTx(ctx, tx, "materials", gigID, ids)
}

func (r *MaterialRepo) InsertTx(ctx context.Context, tx *sql.Tx, m *model.Material) error {
	const q = `INSERT INTO materials (gig_id, title, kind, url, note, sort_index)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, m.GigID, m.Title, m.Kind, m.URL, m.Note, m.SortIndex)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

func (r *MaterialRepo) UpdateTx(ctx context.Context, tx *sql.Tx, m *model.Material) error {
	const q = `UPDATE materials
	           SET title = ?, kind = ?, url = ?, note = ?, sort_index = ?
	           WHERE id = ? AND gig_id = ?`
	_, err := tx.ExecContext(ctx, q, m.Title, m.Kind, m.URL, m.Note, m.SortIndex, m.ID, m.GigID)
	return err
}
