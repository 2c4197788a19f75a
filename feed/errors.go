package feed

import (
	"fmt"
	"strings"
)

// HTTPStatusError reports a feed response with an unexpected status code.
type HTTPStatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *HTTPStatusError) Error() string {
	status := strings.TrimSpace(e.Status)
	if status == "" {
		status = fmt.Sprintf("%d", e.StatusCode)
	}
	return fmt.Sprintf("feed %s: HTTP %s", e.URL, status)
}
