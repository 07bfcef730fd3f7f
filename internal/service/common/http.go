//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrBadHTTPStatus is returned when the server answers with anything but 200 OK.
var ErrBadHTTPStatus = errors.New("unexpected http status")

// Doer is satisfied by *http.Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewHTTPClient returns a client whose requests are bounded by timeout.
// A zero timeout leaves requests unbounded.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// Get issues a GET request for rawURL and checks the status code.
// On success the caller owns the response body.
func Get(ctx context.Context, client Doer, rawURL, accept, userAgent string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, err
	}

	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	response, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	if response.StatusCode != http.StatusOK {
		_ = response.Body.Close()

		return nil, fmt.Errorf("%s, %s: %w", rawURL, response.Status, ErrBadHTTPStatus)
	}

	return response, nil
}
