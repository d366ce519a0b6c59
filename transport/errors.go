package transport

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// NetworkError reports a connection, DNS, TLS or timeout failure
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", RedactURL(e.URL), e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError reports a non-2xx response
type HTTPError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.StatusCode, RedactURL(e.URL))
}

// IsNetworkError reports whether err wraps a *NetworkError
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// RedactURL hides the value of the key query parameter
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if !u.Query().Has("key") {
		return raw
	}
	// Rewrite in place so the remaining parameters keep their order.
	parts := strings.Split(u.RawQuery, "&")
	for i, p := range parts {
		if p == "key" || strings.HasPrefix(p, "key=") {
			parts[i] = "key=REDACTED"
		}
	}
	u.RawQuery = strings.Join(parts, "&")
	return u.String()
}

// unwrapURLError drops the *url.Error wrapper so the unredacted URL it
// embeds never reaches an error message.
func unwrapURLError(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Err
	}
	return err
}
