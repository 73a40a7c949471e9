package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const maxErrorBody = 64 << 10

// APIError is a non-2xx answer from the backend. Detail is the backend's own message, if any.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("backend responded %d", e.Status)
	}
	return fmt.Sprintf("backend responded %d: %s", e.Status, e.Detail)
}

func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &APIError{Status: resp.StatusCode}

	var body struct {
		Detail json.RawMessage `json:"detail"`
		Error  string          `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		// validation errors carry a list here; only a plain string is shown to users
		var detail string
		if len(body.Detail) > 0 && json.Unmarshal(body.Detail, &detail) == nil {
			apiErr.Detail = strings.TrimSpace(detail)
		}
		if apiErr.Detail == "" {
			apiErr.Detail = strings.TrimSpace(body.Error)
		}
	}
	return apiErr
}

// Detail returns the backend-supplied message carried by err, or fallback when there is none.
// Transport failures and 4xx/5xx answers without a message all collapse to fallback.
func Detail(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

// IsUnauthorized reports a 401: the backend no longer accepts the session's token.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}
