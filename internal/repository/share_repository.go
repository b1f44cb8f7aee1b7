package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/bareloved/gigmaster-sub001/internal/model"
)

// ErrShareNotFound is returned for unknown, revoked and expired share
// tokens alike so callers cannot probe which of the three it was.
var ErrShareNotFound = errors.New("share not found")

// ShareRepo manages persistence for share tokens.
type ShareRepo struct {
	db *sql.DB
}

func NewShareRepo(db *sql.DB) *ShareRepo { return &ShareRepo{db: db} }

const shareCols = "id, gig_id, token, label, expires_at, revoked_at, created_at"

// Create inserts a share token row. A duplicate token value surfaces as
// ErrConflict; the handler retries once with a freshly generated token.
func (r *ShareRepo) Create(ctx context.Context, st *model.ShareToken) error {
	const q = `INSERT INTO share_tokens (gig_id, token, label, expires_at) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, st.GigID, st.Token, st.Label, st.ExpiresAt)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	st.ID = uint64(id)
	return r.db.QueryRowContext(ctx, "SELECT "+shareCols+" FROM share_tokens WHERE id = ?", st.ID).
		Scan(&st.ID, &st.GigID, &st.Token, &st.Label, &st.ExpiresAt, &st.RevokedAt, &st.CreatedAt)
}

// ListByGig returns every token minted for a gig, newest first,
// including revoked and expired ones so owners can audit them.
func (r *ShareRepo) ListByGig(ctx context.Context, gigID uint64) ([]model.ShareToken, error) {
	const q = "SELECT " + shareCols + " FROM share_tokens WHERE gig_id = ? ORDER BY id DESC"
	rows, err := r.db.QueryContext(ctx, q, gigID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ShareToken{}
	for rows.Next() {
		var st model.ShareToken
		if err := rows.Scan(&st.ID, &st.GigID, &st.Token, &st.Label,
			&st.ExpiresAt, &st.RevokedAt, &st.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// GetActiveByToken resolves a raw token value to its gig. Revoked and
// expired tokens return ErrShareNotFound.
func (r *ShareRepo) GetActiveByToken(ctx context.Context, token string) (*model.ShareToken, error) {
	const q = "SELECT " + shareCols + " FROM share_tokens WHERE token = ? LIMIT 1"
	var st model.ShareToken
	err := r.db.QueryRowContext(ctx, q, token).Scan(&st.ID, &st.GigID, &st.Token, &st.Label,
		&st.ExpiresAt, &st.RevokedAt, &st.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShareNotFound
		}
		return nil, err
	}
	if !st.Active(time.Now().UTC()) {
		return nil, ErrShareNotFound
	}
	return &st, nil
}

// RevokeByIDAndOwner marks a token revoked, with ownership enforced
// through the gig join. sql.ErrNoRows means missing, foreign or already
// revoked.
func (r *ShareRepo) RevokeByIDAndOwner(ctx context.Context, id, ownerID uint64) error {
	const q = `UPDATE share_tokens st
	           JOIN gigs g ON g.id = st.gig_id
	           SET st.revoked_at = NOW()
	           WHERE st.id = ? AND g.owner_id = ? AND st.revoked_at IS NULL`
	res, err := r.db.ExecContext(ctx, q, id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
