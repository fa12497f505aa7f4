package api

import (
	"net/http"

	"github.com/sandesh/prepquiz/internal/errors"
	"github.com/sandesh/prepquiz/internal/logger"
)

type errorResponse struct {
	Error           string `json:"error"`
	Code            string `json:"code"`
	UpgradeRequired bool   `json:"upgradeRequired,omitempty"`
}

// handleError centralizes error handling for HTTP responses. Gate refusals
// additionally carry the upgrade-prompt flag for the UI.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	appErr, ok := err.(*errors.AppError)
	if !ok {
		appErr = errors.NewInternalError(err)
	}

	if appErr.Status >= 500 {
		log.Error("server error: %v", appErr)
	} else {
		log.Warn("client error: %v", appErr)
	}

	writeJSON(w, r, appErr.Status, errorResponse{
		Error:           appErr.Message,
		Code:            appErr.Code,
		UpgradeRequired: appErr.Code == errors.ErrCodeUpgradeRequired,
	})
}
