package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// url builds a complete URL by appending the path to the base URL.
func (c *SDKClient) url(path string) string {
	return c.BaseURL + path
}

// jsonBody marshals v for a request body. A nil v yields no body.
func jsonBody(v any) (io.Reader, map[string]string, error) {
	if v == nil {
		return nil, nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	return bytes.NewReader(b), map[string]string{"Content-Type": "application/json"}, nil
}

// doRequest performs an unauthenticated HTTP request.
func (c *SDKClient) doRequest(
	ctx context.Context,
	method, path string,
	body io.Reader,
	headers map[string]string,
) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

// doJSON sends in as JSON and decodes the response into out when the status
// equals expectedStatus. out may be nil for bodiless responses.
func (c *SDKClient) doJSON(
	ctx context.Context,
	method, path string,
	in, out any,
	expectedStatus int,
	headers map[string]string,
) error {
	body, h, err := jsonBody(in)
	if err != nil {
		return err
	}
	for k, v := range headers {
		if h == nil {
			h = map[string]string{}
		}
		h[k] = v
	}

	resp, err := c.doRequest(ctx, method, path, body, h)
	if err != nil {
		return err
	}
	return decodeJSON(resp, out, expectedStatus)
}

// doAuthJSON is doJSON with the session's bearer token, refreshing it first
// when it has expired.
func (s *Session) doAuthJSON(ctx context.Context, method, path string, in, out any, expectedStatus int) error {
	token, err := s.getValidToken(ctx)
	if err != nil {
		return err
	}
	return s.client.doJSON(ctx, method, path, in, out, expectedStatus, map[string]string{
		"Authorization": "Bearer " + token,
	})
}

// decodeJSON decodes a JSON response into target, or returns an *APIError
// when the status is not expectedStatus. A nil target discards the body.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		if err := parseErrorResponse(resp, bodyBytes); err != nil {
			return err
		}
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if target == nil || len(bodyBytes) == 0 {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
