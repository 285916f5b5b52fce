package service

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// ErrValidation marks caller mistakes (bad input, duplicates, illegal state
// transitions). Handlers map it to 422.
var ErrValidation = errors.New("validation error")

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

var validate = validator.New()

func validEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}

// logStorageError records a failed persistence write. The in-memory state stays
// authoritative, so the error is not returned to the caller.
func logStorageError(err error, what string) {
	if err != nil {
		log.Error().Err(err).Str("collection", what).Msg("storage write failed")
	}
}
