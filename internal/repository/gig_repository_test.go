package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bareloved/gigmaster-sub001/internal/model"
)

func testGig() *model.Gig {
	return &model.Gig{
		ID:       12,
		OwnerID:  3,
		Title:    "Jazz Night",
		StartsAt: time.Date(2026, 9, 12, 20, 0, 0, 0, time.UTC),
		Status:   model.GigStatusConfirmed,
	}
}

func TestUpdateMetaChangedRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE gigs").
		WillReturnResult(sqlmock.NewResult(0, 1))

	r := NewGigRepo(db)
	require.NoError(t, r.UpdateMeta(context.Background(), testGig()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The MySQL driver reports rows changed, not rows matched: resubmitting
// identical metadata within the same second yields zero affected rows.
// That must be a successful no-op, not a 404.
func TestUpdateMetaUnchangedRowIsNoOp(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE gigs").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM gigs").
		WithArgs(uint64(12), uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	r := NewGigRepo(db)
	require.NoError(t, r.UpdateMeta(context.Background(), testGig()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMetaMissingGig(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE gigs").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM gigs").
		WithArgs(uint64(12), uint64(3)).
		WillReturnError(sql.ErrNoRows)

	r := NewGigRepo(db)
	err = r.UpdateMeta(context.Background(), testGig())
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMetaTxUnchangedRowIsNoOp(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE gigs").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM gigs").
		WithArgs(uint64(12), uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectCommit()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	r := NewGigRepo(db)
	require.NoError(t, r.UpdateMetaTx(context.Background(), tx, testGig()))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMetaTxMissingGig(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE gigs").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM gigs").
		WithArgs(uint64(12), uint64(3)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	r := NewGigRepo(db)
	err = r.UpdateMetaTx(context.Background(), tx, testGig())
	assert.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}
