package model

import "time"

// Gig statuses as stored in the `gigs.status` column.
const (
    GigStatusDraft     = "DRAFT"
    GigStatusConfirmed = "CONFIRMED"
    GigStatusCancelled = "CANCELLED"
    GigStatusArchived  = "ARCHIVED"
)

// Gig represents a live performance engagement owned by a user.  A gig is
// the parent record of a "gig pack": lineup roles, schedule items,
// materials, packing items and the setlist all reference it.  This struct
// corresponds to a row in the `gigs` table.
//
// Fields:
//  ID        – primary key identifier.
//  OwnerID   – user ID of the gig owner.
//  Title     – display name of the engagement.
//  Venue     – venue name (nullable).
//  City      – city of the engagement (nullable).
//  StartsAt  – when the engagement begins.
//  EndsAt    – when it ends (nullable; open-ended gigs are allowed).
//  Status    – DRAFT, CONFIRMED, CANCELLED or ARCHIVED.
//  Notes     – free-form notes shown at the top of the pack (nullable).
//  CreatedAt – timestamp when the row was created.
//  UpdatedAt – timestamp of last update.
type Gig struct {
    ID        uint64     `json:"id"`         // gigs.id
    OwnerID   uint64     `json:"-"`          // gigs.owner_id (not exposed on public views)
    Title     string     `json:"title"`      // gigs.title
    Venue     *string    `json:"venue"`      // gigs.venue (nullable)
    City      *string    `json:"city"`       // gigs.city (nullable)
    StartsAt  time.Time  `json:"starts_at"`  // gigs.starts_at
    EndsAt    *time.Time `json:"ends_at"`    // gigs.ends_at (nullable)
    Status    string     `json:"status"`     // gigs.status
    Notes     *string    `json:"notes"`      // gigs.notes (nullable)
    CreatedAt time.Time  `json:"created_at"` // gigs.created_at
    UpdatedAt time.Time  `json:"updated_at"` // gigs.updated_at
}

// ValidGigStatus reports whether s is one of the accepted status values.
func ValidGigStatus(s string) bool {
    switch s {
    case GigStatusDraft, GigStatusConfirmed, GigStatusCancelled, GigStatusArchived:
        return true
    }
    return false
}
