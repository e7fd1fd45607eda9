package models

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies failures raised while talking to upstream systems.
type ErrorKind int

const (
	ErrorKindUnknown ErrorKind = iota
	ErrorKindConfiguration
	ErrorKindAuthentication
	ErrorKindRequest
	ErrorKindResponse
	ErrorKindNetwork
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindConfiguration:
		return "configuration_error"
	case ErrorKindAuthentication:
		return "authentication_error"
	case ErrorKindRequest:
		return "request_error"
	case ErrorKindResponse:
		return "response_error"
	case ErrorKindNetwork:
		return "network_error"
	default:
		return "unknown_error"
	}
}

// Status is the HTTP status used when an error of this kind carries none.
func (k ErrorKind) Status() int {
	switch k {
	case ErrorKindAuthentication:
		return http.StatusUnauthorized
	case ErrorKindRequest:
		return http.StatusBadRequest
	case ErrorKindResponse:
		return http.StatusBadGateway
	case ErrorKindNetwork:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
	// Details holds the raw upstream body or any extra context, if available
	Details interface{}
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func (e *APIError) ErrorOut() string {
	return fmt.Sprintf("%v (%d): %v", e.Kind, e.Status, e.Error())
}

func NewAPIError(kind ErrorKind, status int, msg string, details interface{}, err error) *APIError {
	if status == 0 {
		status = kind.Status()
	}
	return &APIError{
		Kind:    kind,
		Status:  status,
		Message: msg,
		Details: details,
		Err:     err,
	}
}

// AsAPIError unwraps err into an *APIError, wrapping unknown errors.
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return NewAPIError(ErrorKindUnknown, 0, "unexpected error", nil, err)
}

// IsKind reports whether err is an *APIError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}
