package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Detail)
}

// IsNotFound reports whether err is a 404 from the service.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized reports whether err is a 401 from the service.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

func hasStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// errorDetail pulls the human-readable message out of an error body.
// The service returns either {"detail": "text"} or, for request
// validation failures, {"detail": [{"msg": "text", ...}, ...]}.
func errorDetail(body []byte) string {
	if !gjson.ValidBytes(body) {
		return "request failed"
	}
	detail := gjson.GetBytes(body, "detail")
	switch {
	case detail.Type == gjson.String && detail.Str != "":
		return detail.Str
	case detail.IsArray():
		if msg := detail.Get("0.msg"); msg.Exists() {
			return msg.String()
		}
	}
	return "request failed"
}
