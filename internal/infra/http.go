package infra

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// httpClient is shared by all outbound requests.
var httpClient = &http.Client{
	Timeout: 30 * time.Second,
}

// DoGet performs an HTTP GET with the given headers and returns the
// response body and status code. The caller must close the body.
// Non-2xx statuses are returned as errors with the body drained.
func DoGet(ctx context.Context, url string, headers map[string]string) (io.ReadCloser, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build request for %s: %w", url, err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, resp.StatusCode, fmt.Errorf("GET %s: unexpected status %d", url, resp.StatusCode)
	}
	return resp.Body, resp.StatusCode, nil
}
