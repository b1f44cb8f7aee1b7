// This file implements the pack save path. The client submits the whole
// denormalized pack; for each child table the saver computes the set
// difference between existing row IDs and submitted IDs, deletes the
// removed rows, updates the rows that carry IDs, inserts the rest and
// rewrites sort indexes from payload position. Everything runs in one
// transaction; the notification and calendar events fire only after
// commit.
package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/bareloved/gigmaster-sub001/internal/model"
	"github.com/bareloved/gigmaster-sub001/internal/queue"
	"github.com/bareloved/gigmaster-sub001/internal/repository"
)

// SavePack reconciles the submitted payload against the stored pack of
// the given gig. On success it returns the freshly loaded aggregate.
// Returns repository.ErrGigNotFound when the gig is missing or foreign,
// ErrInvalid on a bad payload and repository.ErrUnknownChildID when a
// submitted row references an ID the gig does not own.
func (s *PackService) SavePack(ctx context.Context, ownerID, gigID uint64, in *PackSaveInput) (*model.GigPack, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	gig, err := s.Gigs.GetByIDAndOwner(ctx, gigID, ownerID)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	gig.Title = in.Title
	gig.Venue = in.Venue
	gig.City = in.City
	gig.StartsAt = in.StartsAt
	gig.EndsAt = in.EndsAt
	gig.Status = in.Status
	gig.Notes = in.Notes
	if err = s.Gigs.UpdateMetaTx(ctx, tx, gig); err != nil {
		return nil, err
	}

	if err = s.reconcileLineup(ctx, tx, gigID, in.Lineup); err != nil {
		return nil, err
	}
	if err = s.reconcileSchedule(ctx, tx, gigID, in.Schedule); err != nil {
		return nil, err
	}
	if err = s.reconcileMaterials(ctx, tx, gigID, in.Materials); err != nil {
		return nil, err
	}
	if err = s.reconcilePacking(ctx, tx, gigID, in.Packing); err != nil {
		return nil, err
	}
	if err = s.reconcileSetlist(ctx, tx, gigID, in.Setlist); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	saved, err := s.Gigs.GetByIDAndOwner(ctx, gigID, ownerID)
	if err != nil {
		return nil, err
	}
	pack, err := s.LoadPack(ctx, saved)
	if err != nil {
		return nil, err
	}

	s.EmitEvents(saved, queue.ActionUpdated, len(pack.Lineup), countSongs(pack.Setlist))
	return pack, nil
}

func (s *PackService) reconcileLineup(ctx context.Context, tx *sql.Tx, gigID uint64, in []LineupInput) error {
	existing, err := s.Lineup.IDsByGigTx(ctx, tx, gigID)
	if err != nil {
		return err
	}
	kept := make(map[uint64]struct{}, len(in))
	for _, item := range in {
		if item.ID != nil {
			if _, ok := existing[*item.ID]; !ok {
				return repository.ErrUnknownChildID
			}
			kept[*item.ID] = struct{}{}
		}
	}
	if err := s.Lineup.DeleteByIDsTx(ctx, tx, gigID, removedIDs(existing, kept)); err != nil {
		return err
	}
	for i, item := range in {
		row := model.LineupRole{
			GigID:      gigID,
			Name:       item.Name,
			MemberName: item.MemberName,
			ContactID:  item.ContactID,
			FeeCents:   item.FeeCents,
			SortIndex:  uint32(i),
		}
		if item.ID != nil {
			row.ID = *item.ID
			if err := s.Lineup.UpdateTx(ctx, tx, &row); err != nil {
				return err
			}
		} else if err := s.Lineup.InsertTx(ctx, tx, &row); err != nil {
			return err
		}
	}
	return nil
}

func (s *PackService) reconcileSchedule(ctx context.Context, tx *sql.Tx, gigID uint64, in []ScheduleInput) error {
	existing, err := s.Schedule.IDsByGigTx(ctx, tx, gigID)
	if err != nil {
		return err
	}
	kept := make(map[uint64]struct{}, len(in))
	for _, item := range in {
		if item.ID != nil {
			if _, ok := existing[*item.ID]; !ok {
				return repository.ErrUnknownChildID
			}
			kept[*item.ID] = struct{}{}
		}
	}
	if err := s.Schedule.DeleteByIDsTx(ctx, tx, gigID, removedIDs(existing, kept)); err != nil {
		return err
	}
	for i, item := range in {
		row := model.ScheduleItem{
			GigID:     gigID,
			Label:     item.Label,
			StartsAt:  item.StartsAt,
			EndsAt:    item.EndsAt,
			Location:  item.Location,
			SortIndex: uint32(i),
		}
		if item.ID != nil {
			row.ID = *item.ID
			if err := s.Schedule.UpdateTx(ctx, tx, &row); err != nil {
				return err
			}
		} else if err := s.Schedule.InsertTx(ctx, tx, &row); err != nil {
			return err
		}
	}
	return nil
}

func (s *PackService) reconcileMaterials(ctx context.Context, tx *sql.Tx, gigID uint64, in []MaterialInput) error {
	existing, err := s.Materials.IDsByGigTx(ctx, tx, gigID)
	if err != nil {
		return err
	}
	kept := make(map[uint64]struct{}, len(in))
	for _, item := range in {
		if item.ID != nil {
			if _, ok := existing[*item.ID]; !ok {
				return repository.ErrUnknownChildID
			}
			kept[*item.ID] = struct{}{}
		}
	}
	if err := s.Materials.DeleteByIDsTx(ctx, tx, gigID, removedIDs(existing, kept)); err != nil {
		return err
	}
	for i, item := range in {
		row := model.Material{
			GigID:     gigID,
			Title:     item.Title,
			Kind:      item.Kind,
			URL:       item.URL,
			Note:      item.Note,
			SortIndex: uint32(i),
		}
		if item.ID != nil {
			row.ID = *item.ID
			if err := s.Materials.UpdateTx(ctx, tx, &row); err != nil {
				return err
			}
		} else if err := s.Materials.InsertTx(ctx, tx, &row); err != nil {
			return err
		}
	}
	return nil
}

func (s *PackService) reconcilePacking(ctx context.Context, tx *sql.Tx, gigID uint64, in []PackingInput) error {
	existing, err := s.Packing.IDsByGigTx(ctx, tx, gigID)
	if err != nil {
		return err
	}
	kept := make(map[uint64]struct{}, len(in))
	for _, item := range in {
		if item.ID != nil {
			if _, ok := existing[*item.ID]; !ok {
				return repository.ErrUnknownChildID
			}
			kept[*item.ID] = struct{}{}
		}
	}
	if err := s.Packing.DeleteByIDsTx(ctx, tx, gigID, removedIDs(existing, kept)); err != nil {
		return err
	}
	for i, item := range in {
		row := model.PackingItem{
			GigID:     gigID,
			Label:     item.Label,
			Quantity:  item.Quantity,
			Packed:    item.Packed,
			SortIndex: uint32(i),
		}
		if item.ID != nil {
			row.ID = *item.ID
			if err := s.Packing.UpdateTx(ctx, tx, &row); err != nil {
				return err
			}
		} else if err := s.Packing.InsertTx(ctx, tx, &row); err != nil {
			return err
		}
	}
	return nil
}

// reconcileSetlist handles the two-level collection. Sections are
// reconciled first; songs of removed sections go with them. Songs of
// surviving sections are then reconciled per section, and a song ID
// submitted under a different section than the one it belongs to is
// rejected rather than moved.
func (s *PackService) reconcileSetlist(ctx context.Context, tx *sql.Tx, gigID uint64, in []SectionInput) error {
	existingSections, err := s.Setlist.SectionIDsTx(ctx, tx, gigID)
	if err != nil {
		return err
	}
	songSections, err := s.Setlist.SongIDsBySectionTx(ctx, tx, gigID)
	if err != nil {
		return err
	}

	keptSections := make(map[uint64]struct{}, len(in))
	for _, sec := range in {
		if sec.ID != nil {
			if _, ok := existingSections[*sec.ID]; !ok {
				return repository.ErrUnknownChildID
			}
			keptSections[*sec.ID] = struct{}{}
		}
	}
	removedSections := removedIDs(existingSections, keptSections)
	if err := s.Setlist.DeleteSectionsByIDsTx(ctx, tx, gigID, removedSections); err != nil {
		return err
	}
	// Songs under removed sections are already gone.
	for songID, sectionID := range songSections {
		for _, rid := range removedSections {
			if sectionID == rid {
				delete(songSections, songID)
				break
			}
		}
	}

	keptSongs := make(map[uint64]struct{}, len(songSections))
	for i := range in {
		sec := &in[i]
		row := model.SetlistSection{
			GigID:     gigID,
			Title:     sec.Title,
			SortIndex: uint32(i),
		}
		if sec.ID != nil {
			row.ID = *sec.ID
			if err := s.Setlist.UpdateSectionTx(ctx, tx, &row); err != nil {
				return err
			}
		} else if err := s.Setlist.InsertSectionTx(ctx, tx, &row); err != nil {
			return err
		}

		for j := range sec.Songs {
			song := &sec.Songs[j]
			songRow := model.SetlistSong{
				SectionID:    row.ID,
				GigID:        gigID,
				Title:        song.Title,
				Artist:       song.Artist,
				DurationSecs: song.DurationSecs,
				SongKey:      song.SongKey,
				Notes:        song.Notes,
				SortIndex:    uint32(j),
			}
			if song.ID != nil {
				owner, ok := songSections[*song.ID]
				if !ok || owner != row.ID {
					return repository.ErrUnknownChildID
				}
				keptSongs[*song.ID] = struct{}{}
				songRow.ID = *song.ID
				if err := s.Setlist.UpdateSongTx(ctx, tx, &songRow); err != nil {
					return err
				}
			} else if err := s.Setlist.InsertSongTx(ctx, tx, &songRow); err != nil {
				return err
			}
		}
	}

	existingSongs := make(map[uint64]struct{}, len(songSections))
	for id := range songSections {
		existingSongs[id] = struct{}{}
	}
	return s.Setlist.DeleteSongsByIDsTx(ctx, tx, gigID, removedIDs(existingSongs, keptSongs))
}

// removedIDs returns existing minus kept: the rows the client no longer
// submits and therefore wants gone.
func removedIDs(existing, kept map[uint64]struct{}) []uint64 {
	out := make([]uint64, 0)
	for id := range existing {
		if _, ok := kept[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

func countSongs(sections []model.SetlistSection) int {
	n := 0
	for _, sec := range sections {
		n += len(sec.Songs)
	}
	return n
}

// EmitEvents publishes the gig.updated and calendar.sync events for a
// gig in the background. Failures are logged by the publisher and
// otherwise ignored; the request path never waits on the broker.
func (s *PackService) EmitEvents(g *model.Gig, action string, lineupCount, songCount int) {
	now := time.Now().UTC().Format(time.RFC3339)
	venue, city := "", ""
	if g.Venue != nil {
		venue = *g.Venue
	}
	if g.City != nil {
		city = *g.City
	}
	updated := queue.GigUpdatedEvent{
		EventID:      uuid.NewString(),
		Action:       action,
		GigID:        g.ID,
		OwnerID:      g.OwnerID,
		Title:        g.Title,
		Venue:        venue,
		City:         city,
		StartsAt:     g.StartsAt.UTC().Format(time.RFC3339),
		Status:       g.Status,
		LineupCount:  lineupCount,
		SetlistSongs: songCount,
		SavedAt:      now,
	}
	sync := queue.CalendarSyncEvent{
		EventID:  uuid.NewString(),
		Action:   action,
		GigID:    g.ID,
		OwnerID:  g.OwnerID,
		Title:    g.Title,
		Venue:    venue,
		City:     city,
		StartsAt: g.StartsAt.UTC().Format(time.RFC3339),
		Status:   g.Status,
		SyncedAt: now,
	}
	if g.EndsAt != nil {
		sync.EndsAt = g.EndsAt.UTC().Format(time.RFC3339)
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = PublishGigUpdated(ctx, updated)
		_ = PublishCalendarSync(ctx, sync)
	}()
}
