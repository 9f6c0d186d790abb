package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-api/internal/apperror"
)

var (
	errBadRequest  = errors.New("invalid request body")
	errRateLimited = errors.New("too many requests, try again later")
)

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

// writeError - maps err to a status code. Anything outside the error taxonomy is logged and hidden behind a 500.
func writeError(w http.ResponseWriter, log *slog.Logger, err error) {
	status := statusOf(err)

	detail := err.Error()
	if status == http.StatusInternalServerError {
		log.Error("request failed", "error", err)
		detail = http.StatusText(status)
	}

	writeJSON(w, status, errorResponse{Detail: detail})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrNotAParticipant),
		errors.Is(err, apperror.ErrNotYourTurn):
		return http.StatusForbidden
	case errors.Is(err, apperror.ErrConflict),
		errors.Is(err, apperror.ErrDuplicateUsername):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrInvalidMove),
		errors.Is(err, apperror.ErrInvalidUsername),
		errors.Is(err, apperror.ErrSamePlayer),
		errors.Is(err, apperror.ErrGameFull),
		errors.Is(err, apperror.ErrAlreadyParticipant),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, errRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
