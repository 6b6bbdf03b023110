// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// MaxBodyBytes caps how much of a response body Get buffers. Open does not
// apply it.
const MaxBodyBytes = 10 << 20

const excerptLen = 200

// ErrBodyTooLarge is returned by Get when a 200 response exceeds MaxBodyBytes.
var ErrBodyTooLarge = errors.New("response body too large")

// StatusError reports a non-200 response.
type StatusError struct {
	StatusCode int
	Excerpt    string
}

func (e *StatusError) Error() string {
	if e.Excerpt == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Excerpt)
}

// Open issues a single GET request and returns the body of a 200 response
// unread. The caller must close it. Non-200 responses are drained into an
// excerpt, closed, and returned as a *StatusError.
func Open(ctx context.Context, client *http.Client, url, userAgent string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4*excerptLen))
		return nil, &StatusError{StatusCode: resp.StatusCode, Excerpt: excerpt(body)}
	}
	return resp.Body, nil
}

// Get is Open followed by a bounded read of the body. There is no retry: any
// transport error or non-200 status is returned to the caller. A body larger
// than MaxBodyBytes yields ErrBodyTooLarge rather than a truncated result.
func Get(ctx context.Context, client *http.Client, url, userAgent string) ([]byte, error) {
	rc, err := Open(ctx, client, url, userAgent)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	body, err := io.ReadAll(io.LimitReader(rc, MaxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if len(body) > MaxBodyBytes {
		return nil, fmt.Errorf("%w: exceeds %d bytes", ErrBodyTooLarge, MaxBodyBytes)
	}
	return body, nil
}

func excerpt(body []byte) string {
	s := strings.Join(strings.Fields(string(body)), " ")
	if len(s) > excerptLen {
		s = s[:excerptLen-3] + "..."
	}
	return s
}
