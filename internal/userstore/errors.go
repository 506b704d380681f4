package userstore

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPage is returned for page numbers below 1.
	ErrInvalidPage = errors.New("userstore: page must be 1 or greater")

	// ErrInvalidInput is returned when a user form fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSuperseded is returned by a page fetch whose result was dropped
	// because a newer fetch started before it resolved.
	ErrSuperseded = errors.New("userstore: fetch superseded by a newer request")
)

// FetchError is a failed page retrieval: transport failure, non-2xx
// status or malformed payload.
type FetchError struct {
	Page int
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch page %d: %v", e.Page, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// MutationError is a failed add, update or delete request.
type MutationError struct {
	Op  string // "add", "update" or "delete"
	ID  int    // zero for add
	Err error
}

func (e *MutationError) Error() string {
	if e.ID == 0 {
		return fmt.Sprintf("%s user: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s user %d: %v", e.Op, e.ID, e.Err)
}

func (e *MutationError) Unwrap() error { return e.Err }
