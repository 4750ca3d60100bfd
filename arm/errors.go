package arm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ResponseError is returned for any non-2xx reply.
type ResponseError struct {
	Method     string
	URL        string
	StatusCode int
	// Code and Message are filled from an ARM style {"error":{"code","message"}} body.
	Code    string
	Message string
	Body    string
}

func (e *ResponseError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s %s: unexpected status code %d: %s: %s", e.Method, e.URL, e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("%s %s: unexpected status code %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

func newResponseError(method, url string, status int, body []byte) *ResponseError {
	re := &ResponseError{Method: method, URL: url, StatusCode: status, Body: string(body)}
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &envelope) == nil {
		re.Code = envelope.Error.Code
		re.Message = envelope.Error.Message
	}
	return re
}

// IsNotFound reports whether err is a 404 ResponseError.
func IsNotFound(err error) bool {
	var re *ResponseError
	return errors.As(err, &re) && re.StatusCode == http.StatusNotFound
}
