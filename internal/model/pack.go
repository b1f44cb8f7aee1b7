package model

// GigPack is the full aggregate a client edits and a share link exposes:
// the gig plus every child collection, each ordered by sort index.  It is
// assembled by the service layer from the per-entity repositories and is
// never stored as a single row.
type GigPack struct {
    Gig      Gig              `json:"gig"`
    Lineup   []LineupRole     `json:"lineup"`
    Schedule []ScheduleItem   `json:"schedule"`
    Materials []Material      `json:"materials"`
    Packing  []PackingItem    `json:"packing"`
    Setlist  []SetlistSection `json:"setlist"`
}
