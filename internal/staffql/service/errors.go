package service

import "errors"

// User-facing errors. Their messages reach clients unchanged; anything else
// returned by a service is an internal failure.
var (
	ErrNotFound          = errors.New("User not found")
	ErrAuthentication    = errors.New("Wrong Password")
	ErrDuplicateIdentity = errors.New("email already registered")
	ErrUnauthenticated   = errors.New("authentication required")
	ErrInvalidInput      = errors.New("invalid input")

	ErrEmployeeNotFound = errors.New("employee not found")
)

// IsUserFacing reports whether err belongs to the error taxonomy exposed to
// clients.
func IsUserFacing(err error) bool {
	for _, target := range []error{
		ErrNotFound,
		ErrAuthentication,
		ErrDuplicateIdentity,
		ErrUnauthenticated,
		ErrInvalidInput,
		ErrEmployeeNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
