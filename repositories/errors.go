package repositories

import (
	"HospitalAdmin/database"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrHasDependents     = errors.New("record has dependent records")
	ErrConflict          = errors.New("record conflicts with an existing one")
	ErrInvalidReference  = errors.New("referenced record does not exist")
	ErrBedUnavailable    = errors.New("bed is not available")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// classify maps gorm and driver errors of a read or write onto the package
// sentinels. A foreign key violation on a write means the referenced row is
// missing.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	err = database.TranslateError(err)
	switch {
	case errors.Is(err, database.ErrForeignKey):
		return fmt.Errorf("%w: %v", ErrInvalidReference, err)
	case errors.Is(err, database.ErrUnique):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}

// classifyDelete is classify for deletes, where a foreign key violation
// means other rows still point at the one being removed.
func classifyDelete(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(database.TranslateError(err), database.ErrForeignKey) {
		return fmt.Errorf("%w: %v", ErrHasDependents, err)
	}
	return classify(err)
}
