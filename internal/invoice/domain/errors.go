package domain

import "errors"

var (
	ErrNotFound               = errors.New("not_found")
	ErrInvalidID              = errors.New("invalid_id")
	ErrInvalidTemplate        = errors.New("invalid_template")
	ErrInvalidPaidIndicator   = errors.New("invalid_paid_indicator")
	ErrPaidDateRequired       = errors.New("paid_date_required")
	ErrInvalidPaidDate        = errors.New("invalid_paid_date")
	ErrAlreadyPaid            = errors.New("already_paid")
	ErrPaidIsTerminal         = errors.New("paid_is_terminal")
	ErrPaidDateWithoutPayment = errors.New("paid_date_without_payment")
	ErrLastItem               = errors.New("last_item")
	ErrItemOutOfRange         = errors.New("item_out_of_range")
	ErrInvalidExportFormat    = errors.New("invalid_export_format")
	ErrSessionNotFound        = errors.New("session_not_found")
	ErrInvalidLogo            = errors.New("invalid_logo")
	ErrUnknownItemField       = errors.New("unknown_item_field")
)
