// Package repository provides thin data-access types over *sql.DB.
// Sentinel errors defined here let handlers translate storage
// failures into HTTP statuses without inspecting driver errors
// themselves.
package repository

import "errors"

// ErrDuplicate is returned when an insert or update violates a unique
// index (username or email already taken). The database constraint is
// the authoritative signal; any existence pre-check in the handlers is
// only a best-effort shortcut and cannot close the race between check
// and write. Handlers translate this into HTTP 409.
var ErrDuplicate = errors.New("duplicate key")
