// Package utils provides utility functions and helpers for the application.
// This file implements the response helpers shared by all endpoints.
//
// Two shapes exist side by side:
//   - economy endpoints write their payload as the bare JSON document the
//     dashboard expects, errors as {"error": "..."} and not-found answers as
//     plain text
//   - service endpoints (health, version, route listing) wrap their payload
//     in the Response envelope
package utils

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/voidnest-bridge/internal/constants"
)

// Response represents the envelope used by the service endpoints.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo represents error information in the envelope.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorBody is the error document of the economy endpoints.
type ErrorBody struct {
	Error string `json:"error"`
}

// JSON sends an enveloped response. The success flag follows the status code.
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	SendJSON(w, statusCode, Response{
		Success: statusCode >= 200 && statusCode < 300,
		Data:    data,
	})
}

// EnvelopeError sends an enveloped error response.
func EnvelopeError(w http.ResponseWriter, statusCode int, code, message string) {
	SendJSON(w, statusCode, Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	})
}

// Error sends {"error": message} with the given status code.
func Error(w http.ResponseWriter, statusCode int, message string) {
	SendJSON(w, statusCode, ErrorBody{Error: message})
}

// Text sends a plain text body.
func Text(w http.ResponseWriter, statusCode int, body string) {
	w.Header().Set(constants.HeaderContentType, constants.ContentTypeText)
	w.WriteHeader(statusCode)
	if _, err := w.Write([]byte(body)); err != nil {
		log.Error().Err(err).Msg("Failed to write text response")
	}
}

// NotFound sends a 404 with a plain text body.
func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = constants.MsgPlayerNotFound
	}
	Text(w, http.StatusNotFound, message)
}

// ErrorFromAppError writes err in the economy endpoint format.
// With hideDetails set, server errors carry a generic message instead of the driver text.
func ErrorFromAppError(w http.ResponseWriter, err *AppError, hideDetails bool) {
	if err.StatusCode == http.StatusNotFound {
		NotFound(w, err.Message)
		return
	}

	message := err.Message
	if hideDetails && err.StatusCode >= http.StatusInternalServerError {
		message = constants.MsgInternalServerError
	}
	Error(w, err.StatusCode, message)
}

// SendJSON marshals data and writes it with the JSON content type.
func SendJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal JSON response")
		w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
		w.WriteHeader(http.StatusInternalServerError)
		if _, err := w.Write([]byte(`{"error":"Failed to generate response"}`)); err != nil {
			log.Error().Err(err).Msg("Failed to write error response")
		}
		return
	}

	w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
	w.WriteHeader(statusCode)

	if _, err = w.Write(jsonData); err != nil {
		log.Error().Err(err).Msg("Failed to write JSON response")
	}
}
