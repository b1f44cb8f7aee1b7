package model

import "time"

// Contact is an owner-scoped address book entry.  Lineup roles may
// reference a contact so that phone numbers and emails live in one
// place.  This struct corresponds to a row in the `contacts` table.
//
// Fields:
//  ID        – primary key identifier.
//  OwnerID   – user who owns the contact.
//  Name      – person or company name.
//  Email     – email address (nullable).
//  Phone     – phone number (nullable).
//  RoleHint  – what this person usually does, e.g. "Bass" (nullable).
//  Notes     – free-form notes (nullable).
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Contact struct {
    ID        uint64    `json:"id"`         // contacts.id
    OwnerID   uint64    `json:"-"`          // contacts.owner_id
    Name      string    `json:"name"`       // contacts.name
    Email     *string   `json:"email"`      // contacts.email (nullable)
    Phone     *string   `json:"phone"`      // contacts.phone (nullable)
    RoleHint  *string   `json:"role_hint"`  // contacts.role_hint (nullable)
    Notes     *string   `json:"notes"`      // contacts.notes (nullable)
    CreatedAt time.Time `json:"created_at"` // contacts.created_at
    UpdatedAt time.Time `json:"updated_at"` // contacts.updated_at
}
