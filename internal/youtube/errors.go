package youtube

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates the requested resource does not exist upstream.
var ErrNotFound = errors.New("resource not found")

// TransportError reports an API call that failed at the HTTP level:
// a non-2xx status or an exhausted retry budget.
type TransportError struct {
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("youtube api returned status %d: %s", e.StatusCode, e.Body)
}

// IsNotFound reports whether err is a 404-level transport failure.
func IsNotFound(err error) bool {
	var te *TransportError
	return errors.As(err, &te) && te.StatusCode == http.StatusNotFound
}
