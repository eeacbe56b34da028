package dashboard

import (
	"errors"
	"fmt"
)

// ErrValidation is the base of all missing/invalid-input errors so callers
// can match the whole class with errors.Is.
var ErrValidation = errors.New("invalid input")

var (
	ErrNameRequired     = fmt.Errorf("%w: name is required", ErrValidation)
	ErrPasswordRequired = fmt.Errorf("%w: password is required", ErrValidation)
	ErrPasswordTooShort = fmt.Errorf("%w: password must have at least 6 characters", ErrValidation)
	ErrPasswordMismatch = fmt.Errorf("%w: passwords do not match", ErrValidation)
	ErrEventFields      = fmt.Errorf("%w: title and date are required", ErrValidation)
	ErrNoStatus         = fmt.Errorf("%w: no attendance status chosen", ErrValidation)
	ErrFirstNameMissing = fmt.Errorf("%w: first name is required", ErrValidation)
	ErrBadMealStatus    = fmt.Errorf("%w: unknown meal status", ErrValidation)
)

// Login failures, each mapped to its own user-facing message.
var (
	ErrUserNotFound   = errors.New("user not found, enter the full name")
	ErrAmbiguousName  = errors.New("multiple users matched, enter the full name")
	ErrPasswordNotSet = errors.New("no password set yet")
	ErrWrongPassword  = errors.New("wrong password")
)

var (
	ErrNotLoggedIn      = errors.New("not logged in")
	ErrPermissionDenied = errors.New("permission denied")
	ErrMealCanceled     = errors.New("meal is canceled, signups closed")
	ErrUnknownEvent     = errors.New("unknown event")
	ErrUnknownMember    = errors.New("unknown member")
)
