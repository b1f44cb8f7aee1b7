package repository

import (
	"context"
	"strings"

	"github.com/bareloved/gigmaster-sub001/internal/model"
)

// GigSearchQuery defines filters & pagination for searching an owner's gigs.
type GigSearchQuery struct {
	OwnerID    uint64
	Title      string
	City       string
	Venue      string
	Status     string
	TimeFilter string
	Page       int
	PageSize   int
}

// SearchGigs returns matching gigs for the owner plus the total match
// count for pagination. TimeFilter: "upcoming" (default), "past"
// (starts_at < NOW()), "any".
func (r *GigRepo) SearchGigs(ctx context.Context, q GigSearchQuery) ([]*model.Gig, int64, error) {
	where := []string{"owner_id = ?"}
	args := []any{q.OwnerID}

	switch strings.ToLower(q.TimeFilter) {
	case "any":
	case "past":
		where = append(where, "starts_at < NOW()")
	default:
		where = append(where, "starts_at >= NOW()")
	}

	if q.Title != "" {
		where = append(where, "LOWER(title) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Title)+"%")
	}
	if q.City != "" {
		where = append(where, "LOWER(city) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.City)+"%")
	}
	if q.Venue != "" {
		where = append(where, "LOWER(venue) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Venue)+"%")
	}
	if q.Status != "" {
		where = append(where, "status = ?")
		args = append(args, strings.ToUpper(q.Status))
	}

	cond := strings.Join(where, " AND ")

	var total int64
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM gigs WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize

	dataSQL := "SELECT " + gigCols + " FROM gigs WHERE " + cond +
		" ORDER BY starts_at ASC, id ASC LIMIT ? OFFSET ?"
	argsData := append(append([]any{}, args...), limit, offset)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]*model.Gig, 0, limit)
	for rows.Next() {
		g := new(model.Gig)
		if err := scanGig(rows, g); err != nil {
			return nil, 0, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
