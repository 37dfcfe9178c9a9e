package service

import (
	"errors"

	"github.com/mindbuilders/dtmms/internal/store"
	appErrors "github.com/mindbuilders/dtmms/pkg/errors"
)

// storageError maps a store failure onto the API error model. Corrupt
// collections get their own code so clients can offer a reset.
func storageError(err error, message string) error {
	var corrupt *store.CorruptDataError
	if errors.As(err, &corrupt) {
		return appErrors.Wrap(err, appErrors.ErrCorruptData.Code, appErrors.ErrCorruptData.Status, "stored "+string(corrupt.Key)+" is corrupt")
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

func validationError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}

func notFound(message string) error {
	return appErrors.Clone(appErrors.ErrNotFound, message)
}
