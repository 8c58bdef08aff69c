package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/sea-catering/backend/api/responses"
	"github.com/sea-catering/backend/internal/subscriptions"
	pkgerrors "github.com/sea-catering/backend/pkg/errors"
	"github.com/sea-catering/backend/pkg/logger"
)

const metricsDateLayout = "2006-01-02"

// parseWindowBound accepts either a date or a full RFC3339 timestamp.
func parseWindowBound(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(metricsDateLayout, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// AdminMetrics serves the dashboard aggregates for a date window. When the
// window is omitted it defaults to the current calendar month.
func AdminMetrics(svc subscriptions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "subscription service unavailable"))
			return
		}

		now := time.Now().UTC()
		from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 1, 0)

		details := map[string]string{}
		if raw := r.URL.Query().Get("from"); raw != "" {
			parsed, ok := parseWindowBound(raw)
			if !ok {
				details["from"] = "must be a date (2006-01-02) or RFC3339 timestamp"
			} else {
				from = parsed
			}
		}
		if raw := r.URL.Query().Get("to"); raw != "" {
			parsed, ok := parseWindowBound(raw)
			if !ok {
				details["to"] = "must be a date (2006-01-02) or RFC3339 timestamp"
			} else {
				to = parsed
			}
		}
		if len(details) > 0 {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details))
			return
		}

		result, err := svc.Metrics(r.Context(), from, to)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
