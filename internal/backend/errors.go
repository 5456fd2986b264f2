package backend

import (
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// APIError is what every service operation returns on failure: the domain's
// fixed default message, plus whatever detail the backend offered. 4xx and
// 5xx are treated uniformly.
type APIError struct {
	Op         string
	Message    string
	Detail     string
	StatusCode int
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

// apiError builds the failure for a non-2xx response, best-effort extracting
// a "message" or "error" field from the body. An unparseable body yields the
// bare default message.
func apiError(op, defaultMsg string, resp *resty.Response) *APIError {
	e := &APIError{Op: op, Message: defaultMsg, StatusCode: resp.StatusCode()}

	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err == nil {
		if body.Message != "" {
			e.Detail = body.Message
		} else if body.Error != "" {
			e.Detail = body.Error
		}
	}
	return e
}

// transportError wraps a failed request (DNS, refused connection, timeout)
// with the same domain default the caller would see for an HTTP failure.
func transportError(op, defaultMsg string, err error) *APIError {
	return &APIError{Op: op, Message: defaultMsg, Detail: err.Error()}
}
