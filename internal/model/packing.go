package model

// PackingItem is one entry in the gig's packing checklist.  This struct
// corresponds to a row in the `packing_items` table.
//
// Fields:
//  ID        – primary key identifier.
//  GigID     – parent gig.
//  Label     – what to pack (e.g. "XLR cables").
//  Quantity  – how many (defaults to 1).
//  Packed    – whether the item has been ticked off.
//  SortIndex – zero-based position in the checklist.
type PackingItem struct {
    ID        uint64 `json:"id"`         // packing_items.id
    GigID     uint64 `json:"-"`          // packing_items.gig_id
    Label     string `json:"label"`      // packing_items.label
    Quantity  uint32 `json:"quantity"`   // packing_items.quantity
    Packed    bool   `json:"packed"`     // packing_items.packed
    SortIndex uint32 `json:"sort_index"` // packing_items.sort_index
}
