package mpapi

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey reports that no API key was supplied and none was found in
// the environment.
var ErrMissingAPIKey = errors.New("materials API key is required (provide via parameter or MP_API_KEY environment variable)")

// AuthError reports a request rejected because of the supplied credentials.
type AuthError struct {
	Status int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("materials API rejected the API key (status %d)", e.Status)
}

// LookupError reports that the remote service could not resolve the requested
// element's chemical system.
type LookupError struct {
	Element string
	Status  int
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("materials API has no data for element %s (status %d)", e.Element, e.Status)
}

// StatusError reports any other non-success response.
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("materials API returned unexpected status %d", e.Status)
}
