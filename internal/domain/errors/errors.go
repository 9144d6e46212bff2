package errors

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrBlockedUser        = errors.New("user is blocked")
	ErrReadOnlyRole       = errors.New("role is read-only for this operation")
	ErrNoTeam             = errors.New("user is not linked to a team")

	ErrInviteInvalid = errors.New("código de invitación inválido")
	ErrInviteUsed    = errors.New("ese código ya fue usado")
	ErrInviteExpired = errors.New("ese código ya expiró")

	ErrConfirmationPending  = errors.New("ya hay una orden esperando confirmación")
	ErrConfirmationUnknown  = errors.New("no hay ninguna confirmación pendiente con ese token")
	ErrConfirmationCanceled = errors.New("confirmation canceled")
)

// ValidationError carries the user-facing message of the first violated
// intake rule. It is surfaced verbatim and never retried.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NewValidation wraps a user-facing validation message as an error.
func NewValidation(msg string) error {
	return &ValidationError{Msg: msg}
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StatusLockedError signals an operation attempted outside the order status
// that permits it, e.g. attaching files while the order is not in process.
type StatusLockedError struct {
	Current  string
	Required string
}

func (e *StatusLockedError) Error() string {
	return fmt.Sprintf("la orden está en %q; esta acción requiere estado %q", e.Current, e.Required)
}

// IsStatusLocked reports whether err is a status-gate rejection.
func IsStatusLocked(err error) bool {
	var se *StatusLockedError
	return errors.As(err, &se)
}

// UploadPolicyError rejects a file before any byte is transferred.
type UploadPolicyError struct {
	Filename string
	Reason   string
}

func (e *UploadPolicyError) Error() string {
	return fmt.Sprintf("archivo %q rechazado: %s", e.Filename, e.Reason)
}
