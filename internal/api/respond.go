package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/nhle/timely/internal/model"
	"github.com/nhle/timely/internal/store"
)

// Error codes returned in the error body.
const (
	codeValidation = "validation_error"
	codeNotFound   = "not_found"
	codeForeignKey = "foreign_key_violation"
	codeInternal   = "internal_error"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// writeJSON encodes v with the given status code.
func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encoding response", "error", err)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	writeJSON(w, s.logger, status, v)
}

// writeOK renders the {"ok": true} acknowledgement used by deletes.
func (s *Server) writeOK(w http.ResponseWriter) {
	s.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// writeError maps a store or validation error onto an HTTP response.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *model.ValidationError
	switch {
	case errors.As(err, &ve):
		s.writeJSON(w, http.StatusBadRequest, errorBody{errorDetail{
			Code: codeValidation, Message: ve.Message, Field: ve.Field,
		}})
	case errors.Is(err, store.ErrNotFound):
		s.writeJSON(w, http.StatusNotFound, errorBody{errorDetail{
			Code: codeNotFound, Message: notFoundMessage(r),
		}})
	case errors.Is(err, store.ErrForeignKey):
		s.writeJSON(w, http.StatusConflict, errorBody{errorDetail{
			Code: codeForeignKey, Message: "task_id does not reference an existing task", Field: "task_id",
		}})
	default:
		s.logger.ErrorContext(r.Context(), "request failed",
			"request_id", RequestID(r.Context()),
			"method", r.Method, "path", r.URL.Path, "error", err)
		s.writeJSON(w, http.StatusInternalServerError, errorBody{errorDetail{
			Code: codeInternal, Message: "internal server error",
		}})
	}
}

// notFoundMessage names the missing resource from the request path.
func notFoundMessage(r *http.Request) string {
	switch {
	case strings.HasPrefix(r.URL.Path, tasksPath):
		return "Task not found"
	case strings.HasPrefix(r.URL.Path, eventsPath):
		return "Event not found"
	}
	return "not found"
}
