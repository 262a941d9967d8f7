// Package entitycheck is the shared exists-and-active validation applied
// before any owner reference is accepted. Entities declare the active flag
// through the datamodel.Tracked contract, so the check is static dispatch,
// no reflection.
package entitycheck

import (
	"errors"

	"gorm.io/gorm"

	"github.com/frahmantamala/expense-tracking/internal"
	"github.com/frahmantamala/expense-tracking/internal/core/datamodel"
)

// Find loads the entity by id and verifies it is active. It returns
// "{name} not found" or "{name} is inactive" as caller-visible failures;
// database faults propagate as plain errors through the AppError cause.
func Find[T any, PT interface {
	*T
	datamodel.Tracked
}](db *gorm.DB, id int64, name string) (PT, error) {
	e := PT(new(T))
	if err := db.First(e, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NotFound(name)
		}
		return nil, err
	}
	if !e.Active() {
		return nil, internal.Inactive(name)
	}
	return e, nil
}
