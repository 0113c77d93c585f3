package payments

import (
	"errors"
	"fmt"
)

var (
	ErrNotConfigured  = errors.New("payment processor is not configured")
	ErrMissingURL     = errors.New("payment session has no redirect url")
	ErrMalformedEvent = errors.New("malformed webhook event")
)

// UpstreamError wraps any failure talking to the payment processor
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("payment processor %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// SignatureError reports a webhook payload that failed verification
type SignatureError struct {
	Err error
}

func (e *SignatureError) Error() string {
	return e.Err.Error()
}

func (e *SignatureError) Unwrap() error {
	return e.Err
}
