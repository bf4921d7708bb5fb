package httpapi

import "fmt"

// Custom errors
var ErrUnauthorized = fmt.Errorf("authentication required")
var ErrForbidden = fmt.Errorf("no permission to perform this action")
var ErrNotFound = fmt.Errorf("record not found")
var ErrConflict = fmt.Errorf("conflicting record already exists")
var ErrInvalidID = fmt.Errorf("malformed record id")

// APIError carries a server failure that maps to none of the sentinel
// errors above. Message is the server's "error" field when it sent one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Message)
}
