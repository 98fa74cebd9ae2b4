package repository

import "errors"

// ErrNotFound is returned when a requested record is not found in the repository.
// Services translate it into a NotFound application error.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert collides with an existing key
// (team code, chest number, or a second result for the same programme).
var ErrDuplicate = errors.New("record already exists")

// ErrInvalidTable is returned when attempting to clear a table that is not whitelisted.
var ErrInvalidTable = errors.New("invalid table name")
