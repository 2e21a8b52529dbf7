package tiendanube

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrMissingCredentials = errors.New("missing api key or store id")
	ErrMissingID          = errors.New("item has no id")
)

// APIError is returned for every non-2xx response.
type APIError struct {
	StatusCode int
	Body       []byte
	Method     string
	URL        string
}

func (e *APIError) Error() string {
	if len(e.Body) > 0 {
		return fmt.Sprintf("tiendanube api error: %s %s status=%d body=%s", e.Method, e.URL, e.StatusCode, string(e.Body))
	}
	return fmt.Sprintf("tiendanube api error: %s %s status=%d", e.Method, e.URL, e.StatusCode)
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
