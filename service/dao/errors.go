package dao

import "errors"

// Common, reusable DAO errors.  Using sentinel variables allows callers to
// reliably detect error conditions via errors.Is/As instead of brittle string
// comparisons.

var (
	// ErrNotFound is returned when the requested entity does not exist in the
	// underlying storage.
	ErrNotFound = errors.New("dao: not found")

	// ErrMalformed indicates that stored content could not be parsed.
	ErrMalformed = errors.New("dao: malformed content")

	// ErrInvalidID indicates that the supplied index/key is out of range or
	// otherwise invalid.
	ErrInvalidID = errors.New("dao: invalid id")
)
