package service

import (
	"errors"
	"fmt"
)

var (
	// ErrService matches responses whose error field is set.
	ErrService = errors.New("service error")
	// ErrTransport matches requests that could not complete.
	ErrTransport = errors.New("transport failure")
	// ErrInvalidRequest is returned before sending a request that fails validation.
	ErrInvalidRequest = errors.New("invalid request")
)

// ServiceError carries the message reported by the recognition service.
type ServiceError struct {
	Endpoint string
	Status   int
	Message  string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s (status %d)", e.Endpoint, e.Message, e.Status)
}

func (e *ServiceError) Is(target error) bool { return target == ErrService }

// TransportError wraps network failures and unreadable responses.
type TransportError struct {
	Endpoint string
	Status   int
	Err      error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Endpoint, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }
