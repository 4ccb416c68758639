package service

import (
	"errors"

	"github.com/phrazzld/devlink-api/internal/domain"
	"github.com/phrazzld/devlink-api/internal/store"
)

// storeErrors maps store sentinels to taxonomy errors. Order matters only
// in that every entry is specific; the generic store.ErrNotFound and
// store.ErrDuplicate are never mapped.
var storeErrors = []struct {
	from error
	to   *domain.Error
}{
	{store.ErrEmailExists, domain.ErrUserExists},
	{store.ErrProfileExists, domain.ErrProfileExists},
	{store.ErrHandleExists, domain.ErrProfileHandleExists},
	{store.ErrUserNotFound, domain.ErrUserNotFound},
	{store.ErrProfileNotFound, domain.ErrProfileNotFound},
	{store.ErrPostNotFound, domain.ErrPostNotFound},
}

// translate returns the taxonomy error for err, or err itself when it is
// already a taxonomy error or has no mapping.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := domain.CodeOf(err); ok {
		return err
	}
	for _, m := range storeErrors {
		if errors.Is(err, m.from) {
			return m.to
		}
	}
	return err
}

// isExpected reports whether err belongs to the taxonomy. Expected errors
// are logged at debug level, everything else at error level.
func isExpected(err error) bool {
	_, ok := domain.CodeOf(err)
	return ok
}
