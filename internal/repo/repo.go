package repo

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound makes absence of a row an explicit outcome instead of a nil
// value the caller has to guard against.
var ErrNotFound = errors.New("record not found")

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
