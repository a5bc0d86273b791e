// Package httpjson provides the JSON request/response conventions for the
// API surface. Every failure body is {"message": "..."}; duplicate-RSVP
// rejections additionally carry {"duplicate": true} so clients can
// distinguish them from plain validation failures.
package httpjson

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	json "github.com/goccy/go-json"
)

// maxBodyBytes caps JSON request bodies. Event images travel as multipart,
// not JSON, so API payloads are small.
const maxBodyBytes = 1 << 20

// Decode reads and unmarshals a JSON request body into v.
func Decode(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read request body: %w", err)
	}
	if len(body) == 0 {
		return errors.New("empty request body")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

// Write marshals v and writes it with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorBody is the uniform failure payload.
type errorBody struct {
	Message   string `json:"message"`
	Duplicate bool   `json:"duplicate,omitempty"`
}

// Error writes {"message": msg} with the given status.
func Error(w http.ResponseWriter, status int, msg string) {
	Write(w, status, errorBody{Message: msg})
}

// ValidationError writes a 400 for missing or malformed input.
func ValidationError(w http.ResponseWriter, msg string) {
	Error(w, http.StatusBadRequest, msg)
}

// NotFound writes a 404 for an unresolvable id or email.
func NotFound(w http.ResponseWriter, msg string) {
	Error(w, http.StatusNotFound, msg)
}

// Conflict writes a 400 with the duplicate flag set. The original API
// reported duplicate RSVPs as 400 rather than 409, and clients key off the
// flag, so that status is kept.
func Conflict(w http.ResponseWriter, msg string) {
	Write(w, http.StatusBadRequest, errorBody{Message: msg, Duplicate: true})
}

// Internal writes a 500 for upstream or persistence failures.
func Internal(w http.ResponseWriter, msg string) {
	Error(w, http.StatusInternalServerError, msg)
}
