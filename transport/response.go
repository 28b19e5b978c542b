package transport

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/softglass/calculator-backend/constant"
	"github.com/softglass/calculator-backend/utils/errors"
	"github.com/softglass/calculator-backend/utils/logger"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NotificationErrorResponse is the failure body of the consultation endpoint.
type NotificationErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("[writeJSON] encode response", zap.String("error", err.Error()))
	}
}

func writeSuccess(w http.ResponseWriter, body any) {
	writeJSON(w, http.StatusOK, body)
}

func writeError(w http.ResponseWriter, err error) {
	ce := asCustomError(err)
	writeJSON(w, ce.ErrorHTTPCode(), ErrorResponse{Error: ce.Error()})
}

func writeNotificationError(w http.ResponseWriter, err error) {
	ce := asCustomError(err)
	writeJSON(w, ce.ErrorHTTPCode(), NotificationErrorResponse{Success: false, Error: ce.Error()})
}

// asCustomError maps untyped errors to ErrInternal so raw driver messages
// never reach the client.
func asCustomError(err error) errors.CustomError {
	var ce errors.CustomError
	if stderrors.As(err, &ce) {
		return ce
	}
	logger.Error("[writeError] untyped error", zap.String("error", err.Error()))
	return errors.SetCustomError(constant.ErrInternal)
}
