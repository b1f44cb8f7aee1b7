package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bareloved/gigmaster-sub001/internal/model"
)

// ErrContactNotFound is returned when a contact cannot be found in the DB.
var ErrContactNotFound = errors.New("contact not found")

// ContactRepo manages the owner-scoped address book.
type ContactRepo struct {
	db *sql.DB
}

func NewContactRepo(db *sql.DB) *ContactRepo { return &ContactRepo{db: db} }

const contactCols = "id, owner_id, name, email, phone, role_hint, notes, created_at, updated_at"

func scanContact(row interface{ Scan(...any) error }, ct *model.Contact) error {
	return row.Scan(&ct.ID, &ct.OwnerID, &ct.Name, &ct.Email, &ct.Phone,
		&ct.RoleHint, &ct.Notes, &ct.CreatedAt, &ct.UpdatedAt)
}

// Create inserts a new contact and reads the row back to populate
// defaults.
func (r *ContactRepo) Create(ctx context.Context, ct *model.Contact) error {
	const q = `INSERT INTO contacts (owner_id, name, email, phone, role_hint, notes)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, ct.OwnerID, ct.Name, ct.Email, ct.Phone, ct.RoleHint, ct.Notes)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	ct.ID = uint64(id)
	return scanContact(r.db.QueryRowContext(ctx, "SELECT "+contactCols+" FROM contacts WHERE id = ?", ct.ID), ct)
}

// GetByIDAndOwner fetches a contact only if it belongs to the owner.
func (r *ContactRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.Contact, error) {
	var ct model.Contact
	err := scanContact(r.db.QueryRowContext(ctx,
		"SELECT "+contactCols+" FROM contacts WHERE id = ? AND owner_id = ?", id, ownerID), &ct)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return &ct, nil
}

// ListByOwner returns all contacts for the owner ordered by name.
func (r *ContactRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]*model.Contact, error) {
	const q = "SELECT " + contactCols + " FROM contacts WHERE owner_id = ? ORDER BY name, id"
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Contact
	for rows.Next() {
		ct := new(model.Contact)
		if err := scanContact(rows, ct); err != nil {
			return nil, err
		}
		out = append(out, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites a contact if it belongs to the owner. Returns
// sql.ErrNoRows when no row is affected (not found / not owned).
func (r *ContactRepo) Update(ctx context.Context, ct *model.Contact) error {
	const q = `UPDATE contacts
	           SET name = ?, email = ?, phone = ?, role_hint = ?, notes = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND owner_id = ?`
	res, err := r.db.ExecContext(ctx, q, ct.Name, ct.Email, ct.Phone, ct.RoleHint, ct.Notes, ct.ID, ct.OwnerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteByIDAndOwner removes a contact. Lineup roles referencing it are
// detached by the caller before this runs; the database keeps no FK from
// lineup_roles to contacts for that reason.
func (r *ContactRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM contacts WHERE id = ? AND owner_id = ?", id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
