package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShareTokenActive(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	fresh := ShareToken{Token: "abc"}
	assert.True(t, fresh.Active(now))

	expiring := ShareToken{ExpiresAt: &future}
	assert.True(t, expiring.Active(now))

	expired := ShareToken{ExpiresAt: &past}
	assert.False(t, expired.Active(now))

	revoked := ShareToken{RevokedAt: &past}
	assert.False(t, revoked.Active(now))

	// Revocation wins even with a future expiry.
	both := ShareToken{ExpiresAt: &future, RevokedAt: &past}
	assert.False(t, both.Active(now))
}

func TestValidGigStatus(t *testing.T) {
	for _, s := range []string{GigStatusDraft, GigStatusConfirmed, GigStatusCancelled, GigStatusArchived} {
		assert.True(t, ValidGigStatus(s), s)
	}
	assert.False(t, ValidGigStatus("draft"))
	assert.False(t, ValidGigStatus("PENDING"))
	assert.False(t, ValidGigStatus(""))
}

func TestValidMaterialKind(t *testing.T) {
	for _, k := range []string{MaterialKindLink, MaterialKindFile, MaterialKindNote} {
		assert.True(t, ValidMaterialKind(k), k)
	}
	assert.False(t, ValidMaterialKind("link"))
	assert.False(t, ValidMaterialKind("VIDEO"))
}
