package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var errEmptyBody = errors.New("request body is empty")

// apiError is the JSON error body. Field is set for validation failures.
type apiError struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, apiError{Message: message})
}

func (s *Server) writeFieldError(w http.ResponseWriter, field, message string) {
	s.writeJSON(w, http.StatusBadRequest, apiError{Message: message, Field: field})
}

// decodeJSON reads a single JSON object from the request body into dst.
// Anything but whitespace after the object is rejected.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxJSONBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil && bodyTooLarge(err) {
			return err
		}
		return errors.New("invalid JSON body: unexpected data after the object")
	}
	return nil
}

// bodyTooLarge reports whether err came from http.MaxBytesReader.
func bodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
