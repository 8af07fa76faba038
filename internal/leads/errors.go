package leads

import "errors"

var (
	// ErrMissingBusinessName is returned when the business name is empty
	ErrMissingBusinessName = errors.New("business name is required")

	// ErrMissingPhone is returned when the contact phone is empty
	ErrMissingPhone = errors.New("contact phone is required")

	// ErrLeadNotFound is returned when a lead is not found
	ErrLeadNotFound = errors.New("lead not found")

	// ErrInvalidStatus is returned for an unknown lifecycle status
	ErrInvalidStatus = errors.New("invalid lead status")
)
