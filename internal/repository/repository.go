package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a row is absent or owned by another
// tenant; callers cannot tell the two apart.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a unique constraint is violated.
var ErrDuplicate = errors.New("duplicate record")

// isDuplicateKeyError recognizes the postgres unique-violation shape
// surfaced through the driver.
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "SQLSTATE 23505")
}
