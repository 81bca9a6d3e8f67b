package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/feetracker-io/wallet-fee-tracker/internal/services"
	"github.com/feetracker-io/wallet-fee-tracker/internal/types"
)

const internalErrorMessage = "Internal service error"

type Handler struct {
	svc *services.Service
}

func New(svc *services.Service) *Handler {
	return &Handler{svc: svc}
}

// Result is the successful outcome of a handler. Status defaults to 200.
type Result struct {
	Data   any `json:"data"`
	Status int `json:"-"`
}

type ErrorResponse struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

type handlerFunc func(r *http.Request) (*Result, error)

func NewResult(data any) *Result {
	return &Result{Data: data, Status: http.StatusOK}
}

// Wrap renders the outcome of f. Errors that are not *types.Error are reported as internal
// errors without exposing their message.
func Wrap(f handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := f(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		status := result.Status
		if status == 0 {
			status = http.StatusOK
		}
		writeJSON(w, r, status, result)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := log.Ctx(r.Context())

	var typedErr *types.Error
	if !errors.As(err, &typedErr) {
		typedErr = types.NewInternalServiceError(err)
	}

	resp := ErrorResponse{
		ErrorCode: string(typedErr.ErrorCode),
		Message:   typedErr.Error(),
	}
	if typedErr.StatusCode >= http.StatusInternalServerError && typedErr.ErrorCode == types.InternalServiceError {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		resp.Message = internalErrorMessage
	} else {
		log.Warn().Err(err).
			Str("path", r.URL.Path).
			Str("error_code", resp.ErrorCode).
			Msg("request rejected")
	}

	writeJSON(w, r, typedErr.StatusCode, resp)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to write response")
	}
}
