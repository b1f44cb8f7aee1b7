package model

// Material kinds as stored in the `materials.kind` column.
const (
    MaterialKindLink = "LINK"
    MaterialKindFile = "FILE"
    MaterialKindNote = "NOTE"
)

// Material is an attachment on a gig pack: a link to a chart or stage
// plot, a reference to an uploaded file, or a plain note.  This struct
// corresponds to a row in the `materials` table.
//
// Fields:
//  ID        – primary key identifier.
//  GigID     – parent gig.
//  Title     – display title of the material.
//  Kind      – LINK, FILE or NOTE.
//  URL       – target for LINK/FILE kinds (nullable).
//  Note      – body text for NOTE kind (nullable).
//  SortIndex – zero-based position in the materials list.
type Material struct {
    ID        uint64  `json:"id"`         // materials.id
    GigID     uint64  `json:"-"`          // materials.gig_id
    Title     string  `json:"title"`      // materials.title
    Kind      string  `json:"kind"`       // materials.kind
    URL       *string `json:"url"`        // materials.url (nullable)
    Note      *string `json:"note"`       // materials.note (nullable)
    SortIndex uint32  `json:"sort_index"` // materials.sort_index
}

// ValidMaterialKind reports whether k is one of the accepted kinds.
func ValidMaterialKind(k string) bool {
    switch k {
    case MaterialKindLink, MaterialKindFile, MaterialKindNote:
        return true
    }
    return false
}
