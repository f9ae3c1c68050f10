package registryclient

import "fmt"

// ErrorKind classifies API failures so callers can decide how to degrade:
// network failures fall back to cached data, auth failures clear the admin
// session, not-found failures refresh the local list.
type ErrorKind string

const (
	KindNetwork   ErrorKind = "network"
	KindAuth      ErrorKind = "auth"
	KindNotFound  ErrorKind = "not_found"
	KindBadStatus ErrorKind = "bad_status"
)

// APIError describes a failed call to the registry backend.
type APIError struct {
	Kind    ErrorKind
	Op      string
	Status  int // HTTP status, 0 for transport failures
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsAuthError reports whether err is an authentication/authorization failure
// that should clear the local admin session.
func IsAuthError(err error) bool {
	return errKind(err) == KindAuth
}

// IsNotFound reports whether err indicates the record no longer exists
// on the backend.
func IsNotFound(err error) bool {
	return errKind(err) == KindNotFound
}

// IsNetworkError reports whether err was a transport-level failure where
// falling back to cached data is appropriate.
func IsNetworkError(err error) bool {
	return errKind(err) == KindNetwork
}

func errKind(err error) ErrorKind {
	for err != nil {
		if apiErr, ok := err.(*APIError); ok {
			return apiErr.Kind
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = unwrapper.Unwrap()
	}
	return ""
}
