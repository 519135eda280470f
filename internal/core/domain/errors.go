package domain

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrTodoNotFound = errors.New("todo not found")
	ErrEmailExists  = errors.New("email already exists")

	// ErrInvalidCredentials deliberately covers both unknown-email and
	// wrong-password failures so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrNotAuthorized is returned when a caller touches a resource it does
	// not own, or when the identity provider rejects a re-authentication.
	ErrNotAuthorized = errors.New("not authorized")
)

// FieldErrors maps a request field to the validation messages it failed with.
// It is rejected before any side effect and rendered as a structured 400 body.
type FieldErrors map[string][]string

func (fe FieldErrors) Error() string {
	return "validation failed"
}

// Add appends a message to the given field.
func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

// AsFieldErrors unwraps err into a FieldErrors map, if it is one.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
