// Package queue defines message payloads exchanged over the message broker
// and the background consumer for gig activity.
package queue

// Actions carried by GigUpdatedEvent.
const (
    ActionCreated = "CREATED"
    ActionUpdated = "UPDATED"
    ActionDeleted = "DELETED"
)

// GigUpdatedEvent is published after a gig pack is created, saved or
// deleted. It contains enough information for downstream consumers to
// log, notify lineup members, or trigger analytics without querying the
// primary database.
type GigUpdatedEvent struct {
    EventID      string `json:"event_id"`
    Action       string `json:"action"`
    GigID        uint64 `json:"gig_id"`
    OwnerID      uint64 `json:"owner_id"`
    Title        string `json:"title"`
    Venue        string `json:"venue,omitempty"`
    City         string `json:"city,omitempty"`
    StartsAt     string `json:"starts_at"`
    Status       string `json:"status"`
    LineupCount  int    `json:"lineup_count"`
    SetlistSongs int    `json:"setlist_songs"`
    SavedAt      string `json:"saved_at"`
}

// CalendarSyncEvent is published whenever a gig's schedule-relevant
// fields may have changed. The external calendar bridge consumes the
// queue and mirrors the gig into the owner's calendar; the API never
// waits for it.
type CalendarSyncEvent struct {
    EventID  string `json:"event_id"`
    Action   string `json:"action"`
    GigID    uint64 `json:"gig_id"`
    OwnerID  uint64 `json:"owner_id"`
    Title    string `json:"title"`
    Venue    string `json:"venue,omitempty"`
    City     string `json:"city,omitempty"`
    StartsAt string `json:"starts_at"`
    EndsAt   string `json:"ends_at,omitempty"`
    Status   string `json:"status"`
    SyncedAt string `json:"synced_at"`
}
