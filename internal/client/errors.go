package client

import (
	"errors"
	"fmt"
)

// Sentinels matched by FetchError through errors.Is.
var (
	// ErrTransport covers DNS, connection, TLS and timeout failures.
	ErrTransport = errors.New("transport error")

	// ErrHTTPStatus is returned when the server answers with a non-2xx status.
	ErrHTTPStatus = errors.New("http status error")
)

// FetchErrorKind classifies why a page could not be fetched
type FetchErrorKind int

const (
	KindTransport FetchErrorKind = iota
	KindHTTPStatus
)

func (k FetchErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindHTTPStatus:
		return "http status"
	default:
		return "unknown"
	}
}

// FetchError reports a failed GET. Missing markup structure is never a
// FetchError; extractors return empty results for it instead.
type FetchError struct {
	Kind       FetchErrorKind
	URL        string
	StatusCode int   // Set for KindHTTPStatus
	Err        error // Underlying transport error, if any
}

func (e *FetchError) Error() string {
	if e.Kind == KindHTTPStatus {
		return fmt.Sprintf("fetch %s: HTTP error: %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match a FetchError against ErrTransport or ErrHTTPStatus.
func (e *FetchError) Is(target error) bool {
	switch target {
	case ErrTransport:
		return e.Kind == KindTransport
	case ErrHTTPStatus:
		return e.Kind == KindHTTPStatus
	}
	return false
}
