package model

import "time"

// ShareToken grants read-only access to a full gig pack via an
// unguessable URL.  Tokens may carry an expiry and can be revoked at any
// time; expired and revoked tokens behave exactly like unknown ones.
// This struct corresponds to a row in the `share_tokens` table.
//
// Fields:
//  ID        – primary key identifier.
//  GigID     – gig the token exposes.
//  Token     – unique random token value (hex).
//  Label     – optional note on who the link was given to.
//  ExpiresAt – when the token stops working (nullable = never).
//  RevokedAt – when the token was revoked (nullable = active).
//  CreatedAt – creation timestamp.
type ShareToken struct {
    ID        uint64     `json:"id"`         // share_tokens.id
    GigID     uint64     `json:"gig_id"`     // share_tokens.gig_id
    Token     string     `json:"token"`      // share_tokens.token
    Label     *string    `json:"label"`      // share_tokens.label (nullable)
    ExpiresAt *time.Time `json:"expires_at"` // share_tokens.expires_at (nullable)
    RevokedAt *time.Time `json:"revoked_at"` // share_tokens.revoked_at (nullable)
    CreatedAt time.Time  `json:"created_at"` // share_tokens.created_at
}

// Active reports whether the token is currently usable.
func (t *ShareToken) Active(now time.Time) bool {
    if t.RevokedAt != nil {
        return false
    }
    if t.ExpiresAt != nil && now.After(*t.ExpiresAt) {
        return false
    }
    return true
}
