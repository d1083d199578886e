package domain

import "fmt"

// ValidationError reports an input outside its documented range. It is
// raised before any network or dataset access.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// UnsupportedCapabilityError reports a capability the resolved backend does
// not implement. Alternative names the backend that does.
type UnsupportedCapabilityError struct {
	Capability  string
	Backend     string
	Alternative string
}

func (e *UnsupportedCapabilityError) Error() string {
	return fmt.Sprintf("%s is not supported by the %s backend; use the %s backend",
		e.Capability, e.Backend, e.Alternative)
}

// TransportError reports a failed remote call. It is surfaced to the caller
// as-is; the core never retries across backends.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("request to %s failed with status %d", e.URL, e.StatusCode)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DatasetUnavailableError reports a missing ephemeris dataset file that
// could not be retrieved from the configured storage backend.
type DatasetUnavailableError struct {
	File    string
	Backend string
	Err     error
}

func (e *DatasetUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ephemeris dataset %s not available from %s storage: %v", e.File, e.Backend, e.Err)
	}
	return fmt.Sprintf("ephemeris dataset %s not available from %s storage and auto-download is disabled", e.File, e.Backend)
}

func (e *DatasetUnavailableError) Unwrap() error { return e.Err }
