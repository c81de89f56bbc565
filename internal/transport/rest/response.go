package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"unicode"
	"unicode/utf8"

	"github.com/dailyspark/vocab-backend/internal/domain"
	"github.com/dailyspark/vocab-backend/internal/service/vocabimport"
)

type fieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error   string               `json:"error"`
	Details []fieldErrorResponse `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// handleError maps service errors onto HTTP status codes. Unknown errors
// are logged and hidden behind a generic 500.
func handleError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var (
		decodeErr  *vocabimport.DecodeError
		persistErr *vocabimport.PersistError
		validErr   *domain.ValidationError
	)

	switch {
	case errors.As(err, &decodeErr):
		writeError(w, http.StatusBadRequest, capitalize(decodeErr.Reason))
	case errors.As(err, &persistErr):
		log.ErrorContext(r.Context(), "import persist failed",
			slog.Int("chunk", persistErr.Chunk),
			slog.Int("committed", persistErr.Committed),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "Import failed: "+persistErr.Error())
	case errors.As(err, &validErr):
		details := make([]fieldErrorResponse, len(validErr.Errors))
		for i, fe := range validErr.Errors {
			details[i] = fieldErrorResponse{Field: fe.Field, Message: fe.Message}
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Validation failed", Details: details})
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "Already exists")
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
