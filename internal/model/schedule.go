package model

import "time"

// ScheduleItem is one entry in a gig's run sheet: load-in, soundcheck,
// doors, set times and so on.  Items are ordered by SortIndex.  This
// struct corresponds to a row in the `schedule_items` table.
//
// Fields:
//  ID        – primary key identifier.
//  GigID     – parent gig.
//  Label     – what happens (e.g. "Soundcheck").
//  StartsAt  – when it starts.
//  EndsAt    – when it ends (nullable for point-in-time entries).
//  Location  – where it happens, when different from the venue (nullable).
//  SortIndex – zero-based position in the run sheet.
type ScheduleItem struct {
    ID        uint64     `json:"id"`         // schedule_items.id
    GigID     uint64     `json:"-"`          // schedule_items.gig_id
    Label     string     `json:"label"`      // schedule_items.label
    StartsAt  time.Time  `json:"starts_at"`  // schedule_items.starts_at
    EndsAt    *time.Time `json:"ends_at"`    // schedule_items.ends_at (nullable)
    Location  *string    `json:"location"`   // schedule_items.location (nullable)
    SortIndex uint32     `json:"sort_index"` // schedule_items.sort_index
}
