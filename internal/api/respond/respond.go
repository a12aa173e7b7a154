package respond

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"

	"github.com/jhuonas/ai-snippet-service/internal/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error      string            `json:"error"`
	Code       int               `json:"code"`
	Message    string            `json:"message,omitempty"`
	Violations []model.Violation `json:"violations,omitempty"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write(append(body, '\n'))
}

// WriteError writes a standardized error response
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	response := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Code:    statusCode,
		Message: message,
	}
	WriteJSON(w, statusCode, response)
}

// WriteValidationError writes a 400 listing every violation.
func WriteValidationError(w http.ResponseWriter, ve *model.ValidationError) {
	msg := ""
	for i, v := range ve.Violations {
		if i > 0 {
			msg += "; "
		}
		msg += v.Message
	}
	WriteJSON(w, http.StatusBadRequest, ErrorResponse{
		Error:      http.StatusText(http.StatusBadRequest),
		Code:       http.StatusBadRequest,
		Message:    msg,
		Violations: ve.Violations,
	})
}

// WriteBadRequest writes a 400 Bad Request response
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message)
}

// WriteNotFound writes a 404 Not Found response
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message)
}

// WriteInternalError writes a 500 Internal Server Error response
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message)
}
