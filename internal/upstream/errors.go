package upstream

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"marquee/internal/services"
)

// HTTPError reports a non-2xx upstream response.
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("upstream returned %d %s for %s", e.StatusCode, http.StatusText(e.StatusCode), e.URL)
}

func classifyStatus(status int, rawURL string) error {
	httpErr := &HTTPError{StatusCode: status, URL: rawURL}
	marker := services.ErrTransport
	if status == http.StatusNotFound {
		marker = services.ErrNotFound
	}
	return services.Wrap(marker, "upstream", "fetch", "", httpErr)
}

func classifyTransport(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return services.Wrap(services.ErrTimeout, "upstream", "fetch", "request timed out", err)
	}
	return services.Wrap(services.ErrTransport, "upstream", "fetch", "request failed", err)
}

// retryable limits retries to transport failures and server errors.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= 500
	}
	return services.IsRetryable(err)
}
