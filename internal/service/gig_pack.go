package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bareloved/gigmaster-sub001/internal/model"
	"github.com/bareloved/gigmaster-sub001/internal/repository"
)

// ErrInvalid wraps validation failures of a pack save payload. Handlers
// translate it into an HTTP 400 with the wrapped message.
var ErrInvalid = errors.New("invalid pack payload")

// PackService loads and saves whole gig packs. It is the only component
// that coordinates more than one repository: the save path reconciles
// every child collection against the submitted payload inside a single
// transaction.
type PackService struct {
	db        *sql.DB
	Gigs      *repository.GigRepo
	Lineup    *repository.LineupRepo
	Schedule  *repository.ScheduleRepo
	Materials *repository.MaterialRepo
	Packing   *repository.PackingRepo
	Setlist   *repository.SetlistRepo
}

// NewPackService constructs a PackService and panics if any dependency is nil.
func NewPackService(db *sql.DB, gigs *repository.GigRepo, lineup *repository.LineupRepo,
	schedule *repository.ScheduleRepo, materials *repository.MaterialRepo,
	packing *repository.PackingRepo, setlist *repository.SetlistRepo) *PackService {
	if db == nil || gigs == nil || lineup == nil || schedule == nil ||
		materials == nil || packing == nil || setlist == nil {
		panic("nil dependency passed to NewPackService")
	}
	return &PackService{
		db:        db,
		Gigs:      gigs,
		Lineup:    lineup,
		Schedule:  schedule,
		Materials: materials,
		Packing:   packing,
		Setlist:   setlist,
	}
}

// ----- Save payload DTOs -----
//
// The client submits the whole pack in the denormalized shape it edits:
// gig metadata plus full child collections. Rows that already exist carry
// their ID; new rows omit it. List order in the payload becomes the
// stored sort order.

type PackSaveInput struct {
	Title    string           `json:"title"`
	Venue    *string          `json:"venue"`
	City     *string          `json:"city"`
	StartsAt time.Time        `json:"starts_at"`
	EndsAt   *time.Time       `json:"ends_at"`
	Status   string           `json:"status"`
	Notes    *string          `json:"notes"`
	Lineup   []LineupInput    `json:"lineup"`
	Schedule []ScheduleInput  `json:"schedule"`
	Materials []MaterialInput `json:"materials"`
	Packing  []PackingInput   `json:"packing"`
	Setlist  []SectionInput   `json:"setlist"`
}

type LineupInput struct {
	ID         *uint64 `json:"id"`
	Name       string  `json:"name"`
	MemberName *string `json:"member_name"`
	ContactID  *uint64 `json:"contact_id"`
	FeeCents   *uint32 `json:"fee_cents"`
}

type ScheduleInput struct {
	ID       *uint64    `json:"id"`
	Label    string     `json:"label"`
	StartsAt time.Time  `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
	Location *string    `json:"location"`
}

type MaterialInput struct {
	ID    *uint64 `json:"id"`
	Title string  `json:"title"`
	Kind  string  `json:"kind"`
	URL   *string `json:"url"`
	Note  *string `json:"note"`
}

type PackingInput struct {
	ID       *uint64 `json:"id"`
	Label    string  `json:"label"`
	Quantity uint32  `json:"quantity"`
	Packed   bool    `json:"packed"`
}

type SectionInput struct {
	ID    *uint64     `json:"id"`
	Title string      `json:"title"`
	Songs []SongInput `json:"songs"`
}

type SongInput struct {
	ID           *uint64 `json:"id"`
	Title        string  `json:"title"`
	Artist       *string `json:"artist"`
	DurationSecs *uint32 `json:"duration_secs"`
	SongKey      *string `json:"song_key"`
	Notes        *string `json:"notes"`
}

// Validate normalizes and checks the payload before any database work.
func (in *PackSaveInput) Validate() error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalid)
	}
	if in.StartsAt.IsZero() {
		return fmt.Errorf("%w: starts_at is required", ErrInvalid)
	}
	if in.EndsAt != nil && !in.EndsAt.After(in.StartsAt) {
		return fmt.Errorf("%w: ends_at must be after starts_at", ErrInvalid)
	}
	in.Status = strings.ToUpper(strings.TrimSpace(in.Status))
	if in.Status == "" {
		in.Status = model.GigStatusDraft
	}
	if !model.ValidGigStatus(in.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalid, in.Status)
	}
	for i := range in.Lineup {
		in.Lineup[i].Name = strings.TrimSpace(in.Lineup[i].Name)
		if in.Lineup[i].Name == "" {
			return fmt.Errorf("%w: lineup[%d].name is required", ErrInvalid, i)
		}
	}
	for i := range in.Schedule {
		in.Schedule[i].Label = strings.TrimSpace(in.Schedule[i].Label)
		if in.Schedule[i].Label == "" {
			return fmt.Errorf("%w: schedule[%d].label is required", ErrInvalid, i)
		}
		if in.Schedule[i].StartsAt.IsZero() {
			return fmt.Errorf("%w: schedule[%d].starts_at is required", ErrInvalid, i)
		}
	}
	for i := range in.Materials {
		m := &in.Materials[i]
		m.Title = strings.TrimSpace(m.Title)
		if m.Title == "" {
			return fmt.Errorf("%w: materials[%d].title is required", ErrInvalid, i)
		}
		m.Kind = strings.ToUpper(strings.TrimSpace(m.Kind))
		if !model.ValidMaterialKind(m.Kind) {
			return fmt.Errorf("%w: materials[%d].kind must be LINK, FILE or NOTE", ErrInvalid, i)
		}
	}
	for i := range in.Packing {
		in.Packing[i].Label = strings.TrimSpace(in.Packing[i].Label)
		if in.Packing[i].Label == "" {
			return fmt.Errorf("%w: packing[%d].label is required", ErrInvalid, i)
		}
		if in.Packing[i].Quantity == 0 {
			in.Packing[i].Quantity = 1
		}
	}
	for i := range in.Setlist {
		sec := &in.Setlist[i]
		sec.Title = strings.TrimSpace(sec.Title)
		if sec.Title == "" {
			return fmt.Errorf("%w: setlist[%d].title is required", ErrInvalid, i)
		}
		if sec.ID == nil {
			// Songs under a brand-new section cannot reference existing rows.
			for j := range sec.Songs {
				if sec.Songs[j].ID != nil {
					return fmt.Errorf("%w: setlist[%d].songs[%d] has an id but its section is new", ErrInvalid, i, j)
				}
			}
		}
		for j := range sec.Songs {
			sec.Songs[j].Title = strings.TrimSpace(sec.Songs[j].Title)
			if sec.Songs[j].Title == "" {
				return fmt.Errorf("%w: setlist[%d].songs[%d].title is required", ErrInvalid, i, j)
			}
		}
	}
	return nil
}

// SetPacked flips one packing item's flag and bumps the parent gig's
// updated_at in the same transaction, so pack consumers see the gig as
// freshly modified. Returns sql.ErrNoRows when the item is missing or
// belongs to another owner.
func (s *PackService) SetPacked(ctx context.Context, ownerID, itemID uint64, packed bool) (*model.PackingItem, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	item, err := s.Packing.SetPackedTx(ctx, tx, itemID, ownerID, packed)
	if err != nil {
		return nil, err
	}
	if err = s.Gigs.TouchTx(ctx, tx, item.GigID); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return item, nil
}

// LoadPack assembles the full aggregate for a gig the caller has already
// been authorized to see (by ownership or by share token).
func (s *PackService) LoadPack(ctx context.Context, gig *model.Gig) (*model.GigPack, error) {
	lineup, err := s.Lineup.ListByGig(ctx, gig.ID)
	if err != nil {
		return nil, err
	}
	schedule, err := s.Schedule.ListByGig(ctx, gig.ID)
	if err != nil {
		return nil, err
	}
	materials, err := s.Materials.ListByGig(ctx, gig.ID)
	if err != nil {
		return nil, err
	}
	packing, err := s.Packing.ListByGig(ctx, gig.ID)
	if err != nil {
		return nil, err
	}
	setlist, err := s.Setlist.ListByGig(ctx, gig.ID)
	if err != nil {
		return nil, err
	}
	return &model.GigPack{
		Gig:       *gig,
		Lineup:    lineup,
		Schedule:  schedule,
		Materials: materials,
		Packing:   packing,
		Setlist:   setlist,
	}, nil
}
