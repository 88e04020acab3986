package authsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/authsvc/pkg/httpx"
)

// APIError is a failed API call. The server writes it with WriteError and
// the SDK client parses it back from non-2xx responses.
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Message is the human-readable reason, e.g. "Email already exists"
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("authsdk: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
}

// WriteError writes e as a {"message"} JSON body. 401s carry a Bearer
// WWW-Authenticate challenge.
func (e *APIError) WriteError(w http.ResponseWriter) {
	if e.StatusCode == http.StatusUnauthorized {
		httpx.WriteBearerError(w, e.Message)
		return
	}
	httpx.WriteMessage(w, e.StatusCode, e.Message)
}

// parseErrorResponse turns a non-2xx response into an *APIError. Bodies
// that are not {"message"} JSON fall back to the status text.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: errResp.Message}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
