package model

// SetlistSection groups an ordered run of songs within a gig's setlist,
// e.g. "First set" or "Encore".  Deleting a section removes its songs.
// This struct corresponds to a row in the `setlist_sections` table.
//
// Fields:
//  ID        – primary key identifier.
//  GigID     – parent gig.
//  Title     – section heading.
//  SortIndex – zero-based position among the gig's sections.
//  Songs     – the section's songs ordered by their own sort index.  The
//              slice is populated on aggregate reads and save payloads;
//              it is not a database column.
type SetlistSection struct {
    ID        uint64        `json:"id"`         // setlist_sections.id
    GigID     uint64        `json:"-"`          // setlist_sections.gig_id
    Title     string        `json:"title"`      // setlist_sections.title
    SortIndex uint32        `json:"sort_index"` // setlist_sections.sort_index
    Songs     []SetlistSong `json:"songs"`      // child songs (not a column)
}

// SetlistSong is a single song inside a setlist section.  This struct
// corresponds to a row in the `setlist_songs` table.  GigID is stored
// redundantly alongside SectionID so whole-gig deletes stay single joins.
//
// Fields:
//  ID           – primary key identifier.
//  SectionID    – parent section.
//  GigID        – grandparent gig.
//  Title        – song title.
//  Artist       – original artist (nullable).
//  DurationSecs – expected duration in seconds (nullable).
//  SongKey      – musical key, e.g. "Bbm" (nullable).
//  Notes        – performance notes (nullable).
//  SortIndex    – zero-based position within the section.
type SetlistSong struct {
    ID           uint64  `json:"id"`            // setlist_songs.id
    SectionID    uint64  `json:"-"`             // setlist_songs.section_id
    GigID        uint64  `json:"-"`             // setlist_songs.gig_id
    Title        string  `json:"title"`         // setlist_songs.title
    Artist       *string `json:"artist"`        // setlist_songs.artist (nullable)
    DurationSecs *uint32 `json:"duration_secs"` // setlist_songs.duration_secs (nullable)
    SongKey      *string `json:"song_key"`      // setlist_songs.song_key (nullable)
    Notes        *string `json:"notes"`         // setlist_songs.notes (nullable)
    SortIndex    uint32  `json:"sort_index"`    // setlist_songs.sort_index
}
