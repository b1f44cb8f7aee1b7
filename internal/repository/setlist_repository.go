// This file defines the setlist repository. Setlists are two levels deep
// (sections containing songs), which makes them the only child collection
// with their own cascade: removing a section removes its songs. The pack
// saver reconciles sections first, then songs within each surviving
// section.
package repository

import (
	"context"
	"database/sql"

	"github.com/bareloved/gigmaster-sub001/internal/model"
)

// SetlistRepo manages persistence for setlist sections and songs.
type SetlistRepo struct {
	db *sql.DB
}

func NewSetlistRepo(db *sql.DB) *SetlistRepo { return &SetlistRepo{db: db} }

// ListByGig returns the gig's sections, each with its songs, everything
// ordered by sort index. Two queries, stitched in memory.
func (r *SetlistRepo) ListByGig(ctx context.Context, gigID uint64) ([]model.SetlistSection, error) {
	const qSections = `SELECT id, gig_id, title, sort_index
	                   FROM setlist_sections WHERE gig_id = ? ORDER BY sort_index, id`
	rows, err := r.db.QueryContext(ctx, qSections, gigID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sections := []model.SetlistSection{}
	index := map[uint64]int{}
	for rows.Next() {
		var s model.SetlistSection
		if err := rows.Scan(&s.ID, &s.GigID, &s.Title, &s.SortIndex); err != nil {
			return nil, err
		}
		s.Songs = []model.SetlistSong{}
		index[s.ID] = len(sections)
		sections = append(sections, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const qSongs = `SELECT id, section_id, gig_id, title, artist, duration_secs, song_key, notes, sort_index
	                FROM setlist_songs WHERE gig_id = ? ORDER BY section_id, sort_index, id`
	songRows, err := r.db.QueryContext(ctx, qSongs, gigID)
	if err != nil {
		return nil, err
	}
	defer songRows.Close()

	for songRows.Next() {
		var sg model.SetlistSong
		if err := songRows.Scan(&sg.ID, &sg.SectionID, &sg.GigID, &sg.Title, &sg.Artist,
			&sg.DurationSecs, &sg.SongKey, &sg.Notes, &sg.SortIndex); err != nil {
			return nil, err
		}
		if i, ok := index[sg.SectionID]; ok {
			sections[i].Songs = append(sections[i].Songs, sg)
		}
	}
	return sections, songRows.Err()
}

// SectionIDsTx returns the IDs of the gig's current sections.
func (r *SetlistRepo) SectionIDsTx(ctx context.Context, tx *sql.Tx, gigID uint64) (map[uint64]struct{}, error) {
	return childIDsTx(ctx, tx, "setlist_sections", gigID)
}

// SongIDsBySectionTx returns the gig's current song IDs grouped by their
// section. The saver uses the grouping to reject songs submitted under
// the wrong section.
func (r *SetlistRepo) SongIDsBySectionTx(ctx context.Context, tx *sql.Tx, gigID uint64) (map[uint64]uint64, error) {
	rows, err := tx.QueryContext(ctx, "SELECT id, section_id FROM setlist_songs WHERE gig_id = ?", gigID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bySong := make(map[uint64]uint64)
	for rows.Next() {
		var id, sectionID uint64
		if err := rows.Scan(&id, &sectionID); err != nil {
			return nil, err
		}
		bySong[id] = sectionID
	}
	return bySong, rows.Err()
}

// DeleteSectionsByIDsTx removes sections and, first, their songs.
func (r *SetlistRepo) DeleteSectionsByIDsTx(ctx context.Context, tx *sql.Tx, gigID uint64, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	if err := deleteSongsBySectionTx(ctx, tx, gigID, ids); err != nil {
		return err
	}
	return deleteChildByIDsTx(ctx, tx, "setlist_sections", gigID, ids)
}

func deleteSongsBySectionTx(ctx context.Context, tx *sql.Tx, gigID uint64, sectionIDs []uint64) error {
	placeholders := ""
	args := []any{gigID}
	for i, id := range sectionIDs {
		if i > 0 {
			placeholders += ","
		}
		placeholders += "?"
		args = append(args, id)
	}
	_, err := tx.ExecContext(ctx,
		"DELETE FROM setlist_songs WHERE gig_id = ? AND section_id IN ("+placeholders+")", args...)
	return err
}

// DeleteSongsByIDsTx removes individual songs from the gig.
func (r *SetlistRepo) DeleteSongsByIDsTx(ctx context.Context, tx *sql.Tx, gigID uint64, ids []uint64) error {
	return deleteChildByIDsTx(ctx, tx, "setlist_songs", gigID, ids)
}

// InsertSectionTx inserts a section and populates its generated ID.
func (r *SetlistRepo) InsertSectionTx(ctx context.Context, tx *sql.Tx, s *model.SetlistSection) error {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO setlist_sections (gig_id, title, sort_index) VALUES (?, ?, ?)",
		s.GigID, s.Title, s.SortIndex)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// UpdateSectionTx rewrites a section's title and position.
func (r *SetlistRepo) UpdateSectionTx(ctx context.Context, tx *sql.Tx, s *model.SetlistSection) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE setlist_sections SET title = ?, sort_index = ? WHERE id = ? AND gig_id = ?",
		s.Title, s.SortIndex, s.ID, s.GigID)
	return err
}

// InsertSongTx inserts a song and populates its generated ID.
func (r *SetlistRepo) InsertSongTx(ctx context.Context, tx *sql.Tx, sg *model.SetlistSong) error {
	const q = `INSERT INTO setlist_songs (section_id, gig_id, title, artist, duration_secs, song_key, notes, sort_index)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, sg.SectionID, sg.GigID, sg.Title, sg.Artist,
		sg.DurationSecs, sg.SongKey, sg.Notes, sg.SortIndex)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	sg.ID = uint64(id)
	return nil
}

// UpdateSongTx rewrites a song in place. The section is part of the WHERE
// clause so a song can never silently migrate between sections.
func (r *SetlistRepo) UpdateSongTx(ctx context.Context, tx *sql.Tx, sg *model.SetlistSong) error {
	const q = `UPDATE setlist_songs
	           SET title = ?, artist = ?, duration_secs = ?, song_key = ?, notes = ?, sort_index = ?
	           WHERE id = ? AND section_id = ? AND gig_id = ?`
	_, err := tx.ExecContext(ctx, q, sg.Title, sg.Artist, sg.DurationSecs, sg.SongKey,
		sg.Notes, sg.SortIndex, sg.ID, sg.SectionID, sg.GigID)
	return err
}
