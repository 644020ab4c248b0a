package store

import "errors"

// ErrNotFound marks lookup misses so callers can tell them apart from
// transport failures with errors.Is.
var ErrNotFound = errors.New("not found")
