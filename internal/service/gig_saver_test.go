package service

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bareloved/gigmaster-sub001/internal/model"
)

const gigColsList = "id, owner_id, title, venue, city, starts_at, ends_at, status, notes, created_at, updated_at"

func gigRow(starts time.Time) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{"id", "owner_id", "title", "venue", "city",
		"starts_at", "ends_at", "status", "notes", "created_at", "updated_at"}).
		AddRow(12, 3, "Jazz Night", nil, nil, starts, nil, "CONFIRMED", nil, now, now)
}

// Resubmitting a pack whose metadata is byte-identical to the stored row
// must save successfully: the UPDATE changes nothing, which the driver
// reports as zero affected rows, and that must not abort the
// transaction.
func TestSavePackIdenticalMetadataSucceeds(t *testing.T) {
	s, mock, closeDB := newMockPackService(t)
	defer closeDB()

	starts := time.Date(2026, 9, 12, 20, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT " + gigColsList + " FROM gigs WHERE id = \\? AND owner_id = \\?").
		WithArgs(uint64(12), uint64(3)).
		WillReturnRows(gigRow(starts))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE gigs").
		WillReturnResult(sqlmock.NewResult(0, 0)) // nothing changed
	mock.ExpectQuery("SELECT 1 FROM gigs").
		WithArgs(uint64(12), uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	emptyIDs := func() *sqlmock.Rows { return sqlmock.NewRows([]string{"id"}) }
	mock.ExpectQuery("SELECT id FROM lineup_roles").WillReturnRows(emptyIDs())
	mock.ExpectQuery("SELECT id FROM schedule_items").WillReturnRows(emptyIDs())
	mock.ExpectQuery("SELECT id FROM materials").WillReturnRows(emptyIDs())
	mock.ExpectQuery("SELECT id FROM packing_items").WillReturnRows(emptyIDs())
	mock.ExpectQuery("SELECT id FROM setlist_sections").WillReturnRows(emptyIDs())
	mock.ExpectQuery("SELECT id, section_id FROM setlist_songs").
		WillReturnRows(sqlmock.NewRows([]string{"id", "section_id"}))
	mock.ExpectCommit()

	mock.ExpectQuery("SELECT " + gigColsList + " FROM gigs WHERE id = \\? AND owner_id = \\?").
		WithArgs(uint64(12), uint64(3)).
		WillReturnRows(gigRow(starts))

	mock.ExpectQuery("SELECT id, gig_id, name, member_name, contact_id, fee_cents, sort_index").
		WillReturnRows(sqlmock.NewRows([]string{"id", "gig_id", "name", "member_name",
			"contact_id", "fee_cents", "sort_index", "created_at", "updated_at"}))
	mock.ExpectQuery("SELECT id, gig_id, label, starts_at, ends_at, location, sort_index").
		WillReturnRows(sqlmock.NewRows([]string{"id", "gig_id", "label", "starts_at",
			"ends_at", "location", "sort_index"}))
	mock.ExpectQuery("SELECT id, gig_id, title, kind, url, note, sort_index").
		WillReturnRows(sqlmock.NewRows([]string{"id", "gig_id", "title", "kind",
			"url", "note", "sort_index"}))
	mock.ExpectQuery("SELECT id, gig_id, label, quantity, packed, sort_index").
		WillReturnRows(sqlmock.NewRows([]string{"id", "gig_id", "label", "quantity",
			"packed", "sort_index"}))
	mock.ExpectQuery("SELECT id, gig_id, title, sort_index").
		WillReturnRows(sqlmock.NewRows([]string{"id", "gig_id", "title", "sort_index"}))
	mock.ExpectQuery("SELECT id, section_id, gig_id, title, artist, duration_secs").
		WillReturnRows(sqlmock.NewRows([]string{"id", "section_id", "gig_id", "title",
			"artist", "duration_secs", "song_key", "notes", "sort_index"}))

	in := &PackSaveInput{
		Title:    "Jazz Night",
		StartsAt: starts,
		Status:   model.GigStatusConfirmed,
	}
	pack, err := s.SavePack(context.Background(), 3, 12, in)
	require.NoError(t, err)
	assert.Equal(t, uint64(12), pack.Gig.ID)
	assert.Empty(t, pack.Lineup)
	assert.NoError(t, mock.ExpectationsWereMet())
}
