package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bareloved/gigmaster-sub001/internal/model"
)

func validInput() *PackSaveInput {
	return &PackSaveInput{
		Title:    "Jazz Night",
		StartsAt: time.Date(2026, 9, 12, 20, 0, 0, 0, time.UTC),
	}
}

func TestValidateMinimalPayload(t *testing.T) {
	in := validInput()
	require.NoError(t, in.Validate())
	// An empty status defaults to DRAFT.
	assert.Equal(t, model.GigStatusDraft, in.Status)
}

func TestValidateTrimsAndNormalizes(t *testing.T) {
	in := validInput()
	in.Title = "  Jazz Night  "
	in.Status = " confirmed "
	in.Lineup = []LineupInput{{Name: "  Drums "}}
	require.NoError(t, in.Validate())
	assert.Equal(t, "Jazz Night", in.Title)
	assert.Equal(t, model.GigStatusConfirmed, in.Status)
	assert.Equal(t, "Drums", in.Lineup[0].Name)
}

func TestValidateRejectsBadMeta(t *testing.T) {
	in := validInput()
	in.Title = "   "
	assert.ErrorIs(t, in.Validate(), ErrInvalid)

	in = validInput()
	in.StartsAt = time.Time{}
	assert.ErrorIs(t, in.Validate(), ErrInvalid)

	in = validInput()
	ends := in.StartsAt.Add(-time.Hour)
	in.EndsAt = &ends
	assert.ErrorIs(t, in.Validate(), ErrInvalid)

	in = validInput()
	in.Status = "PENDING"
	assert.ErrorIs(t, in.Validate(), ErrInvalid)
}

func TestValidateChildRequirements(t *testing.T) {
	in := validInput()
	in.Lineup = []LineupInput{{Name: " "}}
	assert.ErrorIs(t, in.Validate(), ErrInvalid)

	in = validInput()
	in.Schedule = []ScheduleInput{{Label: "Soundcheck"}}
	assert.ErrorIs(t, in.Validate(), ErrInvalid) // missing starts_at

	in = validInput()
	in.Materials = []MaterialInput{{Title: "Stage plot", Kind: "VIDEO"}}
	assert.ErrorIs(t, in.Validate(), ErrInvalid)

	in = validInput()
	in.Materials = []MaterialInput{{Title: "Stage plot", Kind: "link"}}
	require.NoError(t, in.Validate())
	assert.Equal(t, model.MaterialKindLink, in.Materials[0].Kind)
}

func TestValidateDefaultsPackingQuantity(t *testing.T) {
	in := validInput()
	in.Packing = []PackingInput{{Label: "XLR cables", Quantity: 0}}
	require.NoError(t, in.Validate())
	assert.Equal(t, uint32(1), in.Packing[0].Quantity)
}

func TestValidateRejectsSongIDUnderNewSection(t *testing.T) {
	songID := uint64(9)
	in := validInput()
	in.Setlist = []SectionInput{{
		Title: "First set",
		Songs: []SongInput{{ID: &songID, Title: "Take Five"}},
	}}
	assert.ErrorIs(t, in.Validate(), ErrInvalid)

	// With the section carrying an ID the same payload is fine.
	secID := uint64(3)
	in.Setlist[0].ID = &secID
	assert.NoError(t, in.Validate())
}

func TestRemovedIDs(t *testing.T) {
	existing := map[uint64]struct{}{1: {}, 2: {}, 3: {}}
	kept := map[uint64]struct{}{2: {}}
	removed := removedIDs(existing, kept)
	assert.ElementsMatch(t, []uint64{1, 3}, removed)

	// Empty submission removes everything.
	assert.ElementsMatch(t, []uint64{1, 2, 3}, removedIDs(existing, map[uint64]struct{}{}))
	// Nothing stored means nothing to remove.
	assert.Empty(t, removedIDs(map[uint64]struct{}{}, kept))
}

func TestCountSongs(t *testing.T) {
	sections := []model.SetlistSection{
		{Songs: []model.SetlistSong{{Title: "a"}, {Title: "b"}}},
		{Songs: nil},
		{Songs: []model.SetlistSong{{Title: "c"}}},
	}
	assert.Equal(t, 3, countSongs(sections))
	assert.Equal(t, 0, countSongs(nil))
}
