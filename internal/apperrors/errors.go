package apperrors

import (
	"errors"
	"fmt"
)

// Code is a stable failure identifier. The API layer maps codes to HTTP
// statuses and returns them verbatim to clients, so values must never change.
type Code string

const (
	CodePermissionDenied Code = "PERMISSION_DENIED"
	CodeBadUserInput     Code = "BAD_USER_INPUT"
	CodeBalanceTooLow    Code = "BALANCE_TOO_LOW"
	CodeInvalidPassword  Code = "INVALID_PASSWORD"

	CodeUserNotFound       Code = "USER_NOT_FOUND"
	CodeAccountNotFound    Code = "ACCOUNT_NOT_FOUND"
	CodeCardNotFound       Code = "CARD_NOT_FOUND"
	CodeProductNotFound    Code = "PRODUCT_NOT_FOUND"
	CodeVoteNotFound       Code = "VOTE_NOT_FOUND"
	CodeDraftNotFound      Code = "DRAFT_NOT_FOUND"
	CodeCurrencyNotFound   Code = "CURRENCY_NOT_FOUND"
	CodeEmploymentNotFound Code = "EMPLOYMENT_NOT_FOUND"
	CodeWorktimeNotFound   Code = "WORKTIME_NOT_FOUND"

	CodeCardAlreadyRegistered Code = "CARD_ALREADY_REGISTERED"
	CodeCardAlreadyAssigned   Code = "CARD_ALREADY_ASSIGNED"
	CodeCardAlreadyUnassigned Code = "CARD_ALREADY_UNASSIGNED"
	CodeCardAlreadyBlocked    Code = "CARD_ALREADY_BLOCKED"
	CodeCardAlreadyUnblocked  Code = "CARD_ALREADY_UNBLOCKED"
	CodeCardBlocked           Code = "CARD_BLOCKED"
	CodeUserAlreadyHasCard    Code = "USER_ALREADY_HAS_CARD"

	CodeVoteEnded         Code = "VOTE_ENDED"
	CodeVoteAlreadyCasted Code = "VOTE_ALREADY_CASTED"

	CodeWorktimeAlreadyPaid Code = "WORKTIME_ALREADY_PAID"

	CodeFromValueNotPositive       Code = "FROM_VALUE_NOT_POSITIVE"
	CodeTransferSenderRestricted   Code = "TRANSFER_SENDER_RESTRICTED"
	CodeTransferReceiverRestricted Code = "TRANSFER_RECEIVER_RESTRICTED"

	CodeInternal Code = "INTERNAL"
)

// AppError is a typed, coded failure raised by the core services.
// Every deliberate precondition violation is one of these; anything else
// that escapes a service is a programming error or infrastructure fault.
type AppError struct {
	Code    Code
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is match two AppErrors by code, so callers can assert
// against the package-level sentinels below regardless of message text.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// New creates an AppError with the given code and message.
func New(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Newf creates an AppError with a formatted message.
func Newf(code Code, format string, args ...any) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an AppError that carries an underlying cause.
func Wrap(code Code, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// Internal wraps an unexpected infrastructure error (DB failure etc.).
func Internal(message string, err error) *AppError {
	return &AppError{Code: CodeInternal, Message: message, Err: err}
}

// CodeOf extracts the stable code from an error chain.
// Unrecognised errors report as INTERNAL.
func CodeOf(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// IsCode reports whether the error chain carries the given code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// Sentinels for errors.Is checks against the most common failure classes.
var (
	ErrPermissionDenied = New(CodePermissionDenied, "permission denied")
	ErrBadUserInput     = New(CodeBadUserInput, "bad user input")
	ErrBalanceTooLow    = New(CodeBalanceTooLow, "account balance too low")
)
