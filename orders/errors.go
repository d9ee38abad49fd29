package orders

import (
	"errors"
	"fmt"
)

// Reason is the detailed, internal failure reason. It is logged server-side
// and then collapsed to a public code before reaching the storefront.
type Reason string

const (
	ReasonProductNotFound Reason = "PRODUCT_NOT_FOUND"
	ReasonOutOfStock      Reason = "OUT_OF_STOCK"
	ReasonSizeOutOfStock  Reason = "SIZE_OUT_OF_STOCK"
	ReasonSystem          Reason = "SYSTEM_ERROR"
)

// Public error codes returned to the caller. Both stock reasons collapse to
// CodeStockLimitExceeded; PRODUCT_NOT_FOUND folds into CodeSystemError.
const (
	CodeStockLimitExceeded = "STOCK_LIMIT_EXCEEDED"
	CodeSystemError        = "SYSTEM_ERROR"
)

// Error is the tagged error produced by order placement.
type Error struct {
	Reason Reason
	Err    error // underlying cause, if any
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("place order: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("place order: %s", e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func failf(reason Reason, err error) *Error {
	return &Error{Reason: reason, Err: err}
}

// PublicCode collapses an order placement error to the code exposed to the
// storefront. The OUT_OF_STOCK / SIZE_OUT_OF_STOCK distinction and the
// missing-product case are preserved only in logs.
func PublicCode(err error) string {
	var oe *Error
	if errors.As(err, &oe) {
		switch oe.Reason {
		case ReasonOutOfStock, ReasonSizeOutOfStock:
			return CodeStockLimitExceeded
		}
	}
	return CodeSystemError
}
