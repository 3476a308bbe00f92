package domain

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidFrequency   = errors.New("invalid schedule frequency")
	ErrNoRecipients       = errors.New("schedule has no recipients")
	ErrNoSelection        = errors.New("report request has no entry selection criteria")
	ErrScheduleInactive   = errors.New("schedule is inactive")
	ErrRenderFailed       = errors.New("report rendering failed")
	ErrDeliveryFailed     = errors.New("report delivery failed")
	ErrDuplicateSchedule  = errors.New("schedule name already exists for this customer")
	ErrInvalidDateRange   = errors.New("invalid date range")
	ErrInvalidEntryNumber = errors.New("invalid entry number")
)
