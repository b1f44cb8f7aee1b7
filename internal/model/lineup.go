package model

import "time"

// LineupRole represents one named slot in the lineup of a gig, e.g.
// "Drums" filled by "Sam Ortiz".  Roles are ordered by SortIndex within
// their gig and may reference an address-book contact.  This struct
// corresponds to a row in the `lineup_roles` table.
//
// Fields:
//  ID         – primary key identifier.
//  GigID      – parent gig.
//  Name       – role name (e.g. "Drums", "FOH engineer").
//  MemberName – person filling the role (nullable while unassigned).
//  ContactID  – optional reference into the owner's contacts.
//  FeeCents   – agreed fee in cents (nullable when undisclosed).
//  SortIndex  – zero-based position within the lineup.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type LineupRole struct {
    ID         uint64    `json:"id"`          // lineup_roles.id
    GigID      uint64    `json:"-"`           // lineup_roles.gig_id
    Name       string    `json:"name"`        // lineup_roles.name
    MemberName *string   `json:"member_name"` // lineup_roles.member_name (nullable)
    ContactID  *uint64   `json:"contact_id"`  // lineup_roles.contact_id (nullable)
    FeeCents   *uint32   `json:"fee_cents"`   // lineup_roles.fee_cents (nullable)
    SortIndex  uint32    `json:"sort_index"`  // lineup_roles.sort_index
    CreatedAt  time.Time `json:"-"`           // lineup_roles.created_at
    UpdatedAt  time.Time `json:"-"`           // lineup_roles.updated_at
}
