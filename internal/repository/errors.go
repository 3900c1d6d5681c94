// Package repository defines the persistence layer and the error types that
// are reused across repositories.  These sentinel values allow higher layers
// such as services and handlers to distinguish between different failure
// scenarios: ErrNotFound for a missing row, ErrForbidden when the caller does
// not own the resource, and ErrConflict when the current state of a row does
// not allow the operation.
package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/iliyamo/periodical-store/internal/database"
)

// ErrNotFound is returned when the requested row does not exist.  Handlers
// should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an update cannot be performed because of
// conflicting state, such as cancelling a subscription that is no longer
// active. Handlers should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrEmailExists is returned by UserRepo.Create for a taken email.
var ErrEmailExists = errors.New("email already exists")

// ErrDuplicate is returned when a unique (user, publication) pair already
// exists, e.g. a second review.
var ErrDuplicate = errors.New("duplicate")

// mapErr converts gorm's not-found error into ErrNotFound and leaves every
// other error untouched.
func mapErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// isDuplicate reports whether err is a unique-constraint violation on any of
// the supported drivers.
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "1062") || // mysql
		strings.Contains(msg, "duplicate key") || // postgres
		strings.Contains(msg, "unique constraint") // sqlite
}

// conn returns tx when set, otherwise db.
func conn(db, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return db
}

// forUpdate adds FOR UPDATE on dialects that support row locks.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if database.SupportsRowLocks(tx) {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
