package server

import (
	"net/http"

	"medtrack/internal/handlers"
)

func newRouter(api *handlers.API) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", handlers.Health)
	mux.HandleFunc("/api/medications", api.MedicationResource)
	mux.HandleFunc("/api/medications/", api.MedicationResource)
	mux.HandleFunc("/api/usages", api.UsageResource)
	mux.HandleFunc("/api/patients", api.PatientResource)
	mux.HandleFunc("/api/patients/", api.PatientResource)
	mux.HandleFunc("/api/dashboard", api.Dashboard)
	mux.HandleFunc("/api/reports/usage", api.UsageReport)
	mux.HandleFunc("/api/reports/patients", api.PatientReport)
	return mux
}
