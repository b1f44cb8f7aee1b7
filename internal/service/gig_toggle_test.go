package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bareloved/gigmaster-sub001/internal/repository"
)

func newMockPackService(t *testing.T) (*PackService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	s := NewPackService(db,
		repository.NewGigRepo(db),
		repository.NewLineupRepo(db),
		repository.NewScheduleRepo(db),
		repository.NewMaterialRepo(db),
		repository.NewPackingRepo(db),
		repository.NewSetlistRepo(db))
	return s, mock, func() { _ = db.Close() }
}

// Toggling a checklist entry must bump the parent gig's updated_at in
// the same transaction.
func TestSetPackedTouchesGig(t *testing.T) {
	s, mock, closeDB := newMockPackService(t)
	defer closeDB()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE packing_items").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id, gig_id, label, quantity, packed, sort_index FROM packing_items").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "gig_id", "label", "quantity", "packed", "sort_index"}).
			AddRow(7, 12, "XLR cables", 4, true, 0))
	mock.ExpectExec("UPDATE gigs SET updated_at").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	item, err := s.SetPacked(context.Background(), 3, 7, true)
	require.NoError(t, err)
	assert.Equal(t, uint64(12), item.GigID)
	assert.True(t, item.Packed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetPackedMissingItemRollsBack(t *testing.T) {
	s, mock, closeDB := newMockPackService(t)
	defer closeDB()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE packing_items").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(uint64(7), uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	_, err := s.SetPacked(context.Background(), 3, 7, true)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// An idempotent toggle (flag already at the requested value) still
// returns the row and still touches the gig.
func TestSetPackedIdempotentToggle(t *testing.T) {
	s, mock, closeDB := newMockPackService(t)
	defer closeDB()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE packing_items").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(uint64(7), uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("SELECT id, gig_id, label, quantity, packed, sort_index FROM packing_items").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "gig_id", "label", "quantity", "packed", "sort_index"}).
			AddRow(7, 12, "XLR cables", 4, true, 0))
	mock.ExpectExec("UPDATE gigs SET updated_at").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	item, err := s.SetPacked(context.Background(), 3, 7, true)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), item.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
