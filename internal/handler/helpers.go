package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/chatcore/internal/logger"
	"github.com/chatcore/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Errorf("writeJSON encode: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeServiceError отображает ошибку сервисного слоя в HTTP-статус.
// Неклассифицированные ошибки логируются и отдаются как 500 без подробностей.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	var se *service.Error
	msg := "internal server error"
	if errors.As(err, &se) {
		msg = se.Msg
	}
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrInvalidOperation):
		writeError(w, http.StatusBadRequest, msg)
	case errors.Is(err, service.ErrPermissionDenied):
		writeError(w, http.StatusForbidden, msg)
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, msg)
	default:
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		logger.Errorf("%s: %v", op, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return false
	}
	return true
}

func queryInt(r *http.Request, key string, defaultVal int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return n
}
