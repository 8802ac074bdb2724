package mendix

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sorenmh/infrastructure-shared/package-browser/models"
)

var (
	ErrUnauthorized = errors.New("invalid or expired credentials")
	ErrForbidden    = errors.New("access denied: insufficient permission")
	ErrNotFound     = errors.New("application not found: invalid identifier")
)

// APIError is returned when the packages API answers with a non-2xx status.
// Message is suitable for showing to an operator as is.
type APIError struct {
	StatusCode int
	Message    string
	// Body is the decoded error envelope, nil when the body was not JSON.
	Body *models.APIErrorBody
	kind error
}

func (e *APIError) Error() string {
	return e.Message
}

// Is reports whether the error maps to one of the fixed status categories
func (e *APIError) Is(target error) bool {
	return e.kind != nil && e.kind == target
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	var envelope models.APIErrorBody
	if len(body) > 0 && json.Unmarshal(body, &envelope) == nil {
		apiErr.Body = &envelope
	}

	switch status {
	case http.StatusUnauthorized:
		apiErr.kind = ErrUnauthorized
	case http.StatusForbidden:
		apiErr.kind = ErrForbidden
	case http.StatusNotFound:
		apiErr.kind = ErrNotFound
	}

	switch {
	case apiErr.kind != nil:
		apiErr.Message = apiErr.kind.Error()
	case apiErr.Body != nil && strings.TrimSpace(apiErr.Body.Error.Message) != "":
		apiErr.Message = apiErr.Body.Error.Message
	default:
		apiErr.Message = fmt.Sprintf("request failed with status %d", status)
	}

	return apiErr
}
