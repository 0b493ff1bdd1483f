package business

import (
	"errors"
	"fmt"
)

// Kind classifies business errors so callers can map them to a response.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindNotFound          Kind = "not_found"
	KindStateConflict     Kind = "state_conflict"
	KindNoClaimableReward Kind = "no_claimable_reward"
	KindForbidden         Kind = "forbidden"
	KindTransactionFailed Kind = "transaction_failed"
	KindCycleDetected     Kind = "cycle_detected"
)

// Error is a business rule violation with a stable code.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error carrying the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// With returns a copy of e that wraps cause.
func (e *Error) With(cause error) *Error {
	cp := *e
	cp.Err = cause
	return &cp
}

// Withf returns a copy of e with a more specific message.
func (e *Error) Withf(format string, args ...interface{}) *Error {
	cp := *e
	cp.Message = fmt.Sprintf(format, args...)
	return &cp
}

var (
	ErrValidation        = &Error{Kind: KindValidation, Code: "validation_error", Message: "invalid request"}
	ErrInvalidRange      = &Error{Kind: KindValidation, Code: "invalid_range", Message: "invalid week range"}
	ErrInvalidOption     = &Error{Kind: KindValidation, Code: "invalid_option", Message: "option must be airdrop or compound"}
	ErrInvalidDecision   = &Error{Kind: KindValidation, Code: "invalid_decision", Message: "status must be approved or rejected"}
	ErrNotFound          = &Error{Kind: KindNotFound, Code: "not_found", Message: "record not found"}
	ErrInvalidState      = &Error{Kind: KindStateConflict, Code: "invalid_state", Message: "operation not allowed in the current state"}
	ErrNoClaimableReward = &Error{Kind: KindNoClaimableReward, Code: "no_claimable_reward", Message: "no claimable reward for this week"}
	ErrForbidden         = &Error{Kind: KindForbidden, Code: "forbidden", Message: "operation not permitted"}
	ErrTransactionFailed = &Error{Kind: KindTransactionFailed, Code: "transaction_failed", Message: "transaction failed"}
	ErrCycleDetected     = &Error{Kind: KindCycleDetected, Code: "cycle_detected", Message: "referral graph contains a cycle"}
)

// KindOf returns the kind of err, or "" when err is not a business error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// asTransactionFailed keeps business errors intact and wraps everything else.
func asTransactionFailed(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return ErrTransactionFailed.With(err)
}
