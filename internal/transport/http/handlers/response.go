package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vedran77/chirp/pkg/apperror"
	"github.com/vedran77/chirp/pkg/validator"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logrus.WithError(err).Warn("encoding response")
	}
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

func writeValidationErrors(w http.ResponseWriter, errs validator.ValidationErrors) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"error": map[string]any{
			"code":   "VALIDATION_ERROR",
			"fields": errs,
		},
	})
}

// writeServiceError answers with the status of an app error. Anything else
// is logged and hidden behind a generic 500.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	appErr, ok := apperror.As(err)
	if !ok || appErr.Code == apperror.CodeInternal {
		logrus.WithError(err).WithField("op", op).Error("request failed")
		writeError(w, http.StatusInternalServerError, string(apperror.CodeInternal), "Something went wrong")
		return
	}
	writeError(w, apperror.HTTPStatus(appErr.Code), string(appErr.Code), appErr.Message)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return false
	}
	return true
}
