package http

import (
	"encoding/json"
	"net/http"
)

// WriteJSONError writes a JSON error response with the given message and
// status code. It sets the Content-Type header to application/json and
// formats the response as {"detail": "message"}.
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"detail": message,
	})
}

// fieldError is one entry of a 422 validation response body.
type fieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// WriteValidationError writes a 422 response whose detail is a list of
// field errors, each locating the offending field.
func WriteValidationError(w http.ResponseWriter, loc []string, msg, errType string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)
	_ = json.NewEncoder(w).Encode(map[string][]fieldError{
		"detail": {{Loc: loc, Msg: msg, Type: errType}},
	})
}

// writeJSON writes a JSON response with the given status code and data.
// It sets the Content-Type header to application/json.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
