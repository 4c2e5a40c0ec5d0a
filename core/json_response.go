// Package core provides the JSON response envelope and HTTP error taxonomy
// shared by all HTTP modules.
package core

import (
	"encoding/json"
	"maps"
	"net/http"
)

// Response renders itself to an http.ResponseWriter.
// Implementations set headers, status code, and write the body.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// JSONResponse is the standard JSON response envelope.
type JSONResponse struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string              `json:"code,omitempty"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

type jsonResponse struct {
	status int
	body   JSONResponse
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSON creates a 200 response wrapping data in the standard envelope.
func JSON(data any) Response {
	return jsonResponse{status: http.StatusOK, body: JSONResponse{Data: data}}
}

// JSONWithMeta creates a 200 response with data and meta information.
func JSONWithMeta(data any, meta map[string]any) Response {
	return jsonResponse{status: http.StatusOK, body: JSONResponse{Data: data, Meta: meta}}
}

// JSONCreated creates a 201 response wrapping data in the standard envelope.
func JSONCreated(data any) Response {
	return jsonResponse{status: http.StatusCreated, body: JSONResponse{Data: data}}
}

// NoContent creates an empty 204 response.
func NoContent() Response {
	return noContentResponse{}
}

type noContentResponse struct{}

func (noContentResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// JSONError creates a JSON error response from an error. ValidationError
// maps to 422 with field details, HTTPError carries its own status, and
// anything else becomes an opaque 500.
func JSONError(err error) Response {
	status := http.StatusInternalServerError
	detail := &ErrorDetail{
		Code:    "internal_server_error",
		Message: http.StatusText(http.StatusInternalServerError),
	}

	switch e := err.(type) {
	case ValidationError:
		status = http.StatusUnprocessableEntity
		detail.Code = "validation_error"
		detail.Message = "Validation failed"
		if len(e) > 0 {
			detail.Details = make(map[string][]string)
			maps.Copy(detail.Details, e)
		}
	case HTTPError:
		status = e.Code
		detail.Code = e.Key
		detail.Message = e.Error()
		if detail.Message == e.Key {
			detail.Message = http.StatusText(e.Code)
		}
	}

	return jsonResponse{status: status, body: JSONResponse{Error: detail}}
}

// Render writes a Response, falling back to a plain 500 if rendering fails.
func Render(w http.ResponseWriter, r *http.Request, resp Response) {
	if err := resp.Render(w, r); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// DecodeJSON parses a JSON request body into v, returning ErrBadRequest
// on malformed input.
func DecodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return ErrBadRequest.WithMessage("invalid JSON body")
	}
	return nil
}
