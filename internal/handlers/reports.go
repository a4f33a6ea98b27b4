package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"medtrack/internal/clinic"
	"medtrack/models"
)

// parseReportFilter reads the optional start_date, end_date and
// medication_id query parameters. Malformed values are a caller error.
func parseReportFilter(r *http.Request) (clinic.ReportFilter, error) {
	filter := clinic.ReportFilter{}
	query := r.URL.Query()

	if raw := strings.TrimSpace(query.Get("start_date")); raw != "" {
		date, err := models.ParseDate(raw)
		if err != nil {
			return filter, &clinic.ValidationError{Reason: "start_date must be formatted YYYY-MM-DD"}
		}
		filter.StartDate = &date
	}
	if raw := strings.TrimSpace(query.Get("end_date")); raw != "" {
		date, err := models.ParseDate(raw)
		if err != nil {
			return filter, &clinic.ValidationError{Reason: "end_date must be formatted YYYY-MM-DD"}
		}
		filter.EndDate = &date
	}
	if raw := strings.TrimSpace(query.Get("medication_id")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return filter, &clinic.ValidationError{Reason: "medication_id must be a positive integer"}
		}
		medicationID := uint(id)
		filter.MedicationID = &medicationID
	}

	return filter, nil
}

// UsageReport serves GET /api/reports/usage.
func (a *API) UsageReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	filter, err := parseReportFilter(r)
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	rows, err := a.clinic.UsageReport(r.Context(), filter)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// PatientReport serves GET /api/reports/patients.
func (a *API) PatientReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	filter, err := parseReportFilter(r)
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	report, err := a.clinic.PatientReport(r.Context(), filter)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Dashboard serves GET /api/dashboard.
func (a *API) Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	summary, err := a.clinic.Dashboard(r.Context())
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
