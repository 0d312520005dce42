package webhook

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotUnique is returned when the list query reports more than one
	// mapping for a (obs, project, package) triple. The API guarantees
	// uniqueness, so this is a fatal inconsistency and is never resolved
	// by picking one of the results.
	ErrNotUnique = errors.New("more than one webhook mapping found")

	// ErrMappingNotAllowed is returned by CreateMapping when the server
	// rejects the create because its policy does not allow mappings for
	// this context. The reconciler treats it as a successful no-op.
	ErrMappingNotAllowed = errors.New("server does not allow mappings here")
)

// APIError is any non-2xx response from the webhook API that is not
// classified as a benign rejection. It carries the response body so the
// server's own diagnostics reach the user, not just a status code.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	body := e.Body
	if body == "" {
		body = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("webhook API returned %d: %s", e.StatusCode, body)
}

// errorBody is the structured error payload the API returns on
// validation failures.
type errorBody struct {
	NonFieldErrors []string `json:"non_field_errors"`
	Detail         string   `json:"detail"`
}
