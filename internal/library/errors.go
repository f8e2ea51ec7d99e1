package library

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Tocea2003/Practica-BookSystem/internal/integrity"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = integrity.ErrConflict
	ErrInvalidStatus     = errors.New("invalid reservation status")
	ErrInvalidTransition = errors.New("invalid reservation status transition")
	ErrAlreadyReturned   = errors.New("reservation has already been returned")
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
	ErrInvalidInput      = errors.New("invalid input")
)

// NotFoundError names the missing record. It matches ErrNotFound.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func notFound(entity string, id uint) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// lookupErr converts gorm's missing-row error into a NotFoundError.
func lookupErr(err error, entity string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(entity, id)
	}
	return fmt.Errorf("loading %s %d: %w", entity, id, err)
}
