package services

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrAssignmentInFlight = errors.New("assignment already in progress for this order")
	ErrPartnerBusy        = errors.New("partner has an active delivery")
	ErrOrderClosed        = errors.New("order is already closed")
)

// ValidationError blocks an order write before anything touches the
// database. The message is the first failing rule, verbatim.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
