package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	perrors "github.com/matzehuels/switchpuzzle/pkg/errors"
	"github.com/matzehuels/switchpuzzle/pkg/observability"
)

const codeBodyTooLarge = "BODY_TOO_LARGE"

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Code: code, Message: message})
}

func writeMappedError(w http.ResponseWriter, r *http.Request, err error) {
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	status, code := mapError(err)
	writeError(w, status, code, perrors.UserMessage(err))
}

// mapError picks the status and code reported for err. The code is that of
// the innermost structured error so that clients see INVALID_OPERATION
// rather than a wrapping layer.
func mapError(err error) (int, string) {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge, codeBodyTooLarge
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, string(perrors.ErrCodeInternal)
	}

	code := perrors.RootCode(err)
	switch {
	case code == "":
		return http.StatusInternalServerError, string(perrors.ErrCodeInternal)
	case perrors.IsInputCode(code):
		return http.StatusBadRequest, string(code)
	case code == perrors.ErrCodeNotFound, code == perrors.ErrCodeFileNotFound:
		return http.StatusNotFound, string(code)
	case code == perrors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity, string(code)
	default:
		return http.StatusInternalServerError, string(code)
	}
}
