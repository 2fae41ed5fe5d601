package ipinfolib

import (
	"errors"
	"strconv"
)

var (
	// ErrInvalidInput is matched by errors.Is for *InvalidInputError.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNetwork is matched by errors.Is for *NetworkError.
	ErrNetwork = errors.New("cannot reach ipinfo.io")

	// ErrAPI is matched by errors.Is for *APIError.
	ErrAPI = errors.New("ipinfo.io has responded with error")

	// ErrParse is matched by errors.Is for *ParseError.
	ErrParse = errors.New("cannot parse response")

	// ErrTokenIsRequired is returned by NewClient if token is empty.
	ErrTokenIsRequired = errors.New("auth token is required")
)

// InvalidInputError is returned if IP address (or a field name) is
// malformed. No cache or network access happens in that case.
type InvalidInputError struct {
	Input  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e == nil {
		return ""
	}

	if e.Reason != "" {
		return e.Reason + ": " + strconv.Quote(e.Input)
	}

	return "invalid IP address: " + strconv.Quote(e.Input)
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NetworkError wraps transport failures: dial errors, timeouts, broken
// bodies.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.Err
}

func (e *NetworkError) Error() string {
	switch {
	case e == nil:
		return ""
	case e.Err != nil:
		return ErrNetwork.Error() + ": " + e.Err.Error()
	}

	return ErrNetwork.Error()
}

func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

// APIError is returned if ipinfo.io has responded with non-200 status
// code or a payload which contains an error object. StatusCode is 200
// for the latter.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	switch {
	case e == nil:
		return ""
	case e.Message != "":
		return ErrAPI.Error() + ": status=" + strconv.Itoa(e.StatusCode) + ", message=" + e.Message
	}

	return ErrAPI.Error() + ": status=" + strconv.Itoa(e.StatusCode)
}

func (e *APIError) Is(target error) bool {
	return target == ErrAPI
}

// ParseError is returned if response body is not a valid JSON.
type ParseError struct {
	Err error
}

func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.Err
}

func (e *ParseError) Error() string {
	switch {
	case e == nil:
		return ""
	case e.Err != nil:
		return ErrParse.Error() + ": " + e.Err.Error()
	}

	return ErrParse.Error()
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
