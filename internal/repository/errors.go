// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to perform an operation on a resource owned by someone
// else, while ErrConflict signals a uniqueness violation such as a
// duplicate share token.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an insert or update cannot be
// performed because of conflicting state, such as a duplicate
// unique value. Handlers should translate this into an HTTP 409
// response.
var ErrConflict = errors.New("conflict")

// ErrUnknownChildID is returned by the pack save path when a submitted
// child row carries an ID that does not belong to the gig being saved.
// The save never adopts foreign rows. Handlers should translate this
// into an HTTP 422 response.
var ErrUnknownChildID = errors.New("unknown child id")
