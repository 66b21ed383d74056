package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/sksingtn/trackr-backend/internal/schedule"
	"github.com/sksingtn/trackr-backend/internal/service"
)

// Every response uses the envelope {"status": 0|1, "data": ...}; data is
// the payload on success and the user-facing message on failure.
type envelope struct {
	Status int         `json:"status"`
	Data   interface{} `json:"data"`
}

func writeJSON(w http.ResponseWriter, code int, payload envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

func ok(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, envelope{Status: 1, Data: data})
}

func created(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusCreated, envelope{Status: 1, Data: data})
}

func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, envelope{Status: 0, Data: message})
}

// fail maps an error to the envelope: validation rejections surface their
// message verbatim with a 400, anything else is a masked 500.
func fail(w http.ResponseWriter, logger *zap.Logger, err error) {
	if schedule.IsValidationError(err) || isServiceRejection(err) {
		badRequest(w, err.Error())
		return
	}

	logger.Error("Request failed", zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, envelope{Status: 0, Data: "Something went wrong!"})
}

func isServiceRejection(err error) bool {
	return errors.Is(err, service.ErrNoClasses) ||
		errors.Is(err, service.ErrMaxStudentsNotPositive) ||
		errors.Is(err, service.ErrMaxStudentsBelowCount) ||
		errors.Is(err, service.ErrDuplicateFacultyName) ||
		errors.Is(err, service.ErrInviteTokenInvalid) ||
		errors.Is(err, service.ErrOnboardingDisabled) ||
		errors.Is(err, service.ErrBatchFull) ||
		errors.Is(err, service.ErrStudentNotFound) ||
		errors.Is(err, service.ErrBroadcastTooLong) ||
		errors.Is(err, service.ErrBroadcastBadTarget) ||
		errors.Is(err, service.ErrBroadcastNoReceivers)
}

// elapsedString renders "N minutes ago" style labels for created stamps.
func elapsedString(from, now time.Time) string {
	diff := now.Sub(from)
	totalSeconds := int64(diff.Seconds())

	var value string
	switch {
	case diff.Hours() >= 24:
		days := int(diff.Hours()) / 24
		value = fmt.Sprintf("%d day%s", days, plural(days))
	case totalSeconds >= 3600:
		hours := totalSeconds / 3600
		value = fmt.Sprintf("%d hour%s", hours, plural(int(hours)))
	case totalSeconds >= 60:
		minutes := totalSeconds / 60
		value = fmt.Sprintf("%d minute%s", minutes, plural(int(minutes)))
	default:
		value = fmt.Sprintf("%d seconds", totalSeconds)
	}

	return value + " ago"
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}
