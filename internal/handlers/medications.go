package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"medtrack/internal/clinic"
	applog "medtrack/internal/log"
)

// MedicationResource handles REST-style interactions for medications:
//
//	GET    /api/medications            list
//	POST   /api/medications            create
//	GET    /api/medications/search     substring search (?q=)
//	GET    /api/medications/low-stock  reorder alerts
//	PUT    /api/medications/{id}       partial update
//	DELETE /api/medications/{id}       delete (refused while usage exists)
func (a *API) MedicationResource(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/medications")
	path = strings.Trim(path, "/")

	switch path {
	case "":
		switch r.Method {
		case http.MethodGet:
			a.listMedications(w, r)
		case http.MethodPost:
			a.createMedication(w, r)
		default:
			methodNotAllowed(w)
		}
		return
	case "search":
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		a.searchMedications(w, r)
		return
	case "low-stock":
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		a.lowStockMedications(w, r)
		return
	}

	idValue, err := strconv.ParseUint(path, 10, 64)
	if err != nil {
		applog.Debug(r.Context(), "invalid medication identifier", "identifier", path, "error", err)
		http.NotFound(w, r)
		return
	}
	medicationID := uint(idValue)

	switch r.Method {
	case http.MethodPut:
		a.updateMedication(w, r, medicationID)
	case http.MethodDelete:
		a.deleteMedication(w, r, medicationID)
	default:
		methodNotAllowed(w)
	}
}

func (a *API) createMedication(w http.ResponseWriter, r *http.Request) {
	var input clinic.CreateMedicationInput
	if err := decodeJSON(r, &input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	medication, err := a.clinic.CreateMedication(r.Context(), input)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, medication)
}

func (a *API) listMedications(w http.ResponseWriter, r *http.Request) {
	medications, err := a.clinic.Medications(r.Context())
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, medications)
}

func (a *API) searchMedications(w http.ResponseWriter, r *http.Request) {
	medications, err := a.clinic.SearchMedications(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, medications)
}

func (a *API) lowStockMedications(w http.ResponseWriter, r *http.Request) {
	medications, err := a.clinic.LowStockMedications(r.Context())
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, medications)
}

func (a *API) updateMedication(w http.ResponseWriter, r *http.Request, id uint) {
	var input clinic.UpdateMedicationInput
	if err := decodeJSON(r, &input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	medication, err := a.clinic.UpdateMedication(r.Context(), id, input)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, medication)
}

func (a *API) deleteMedication(w http.ResponseWriter, r *http.Request, id uint) {
	if err := a.clinic.DeleteMedication(r.Context(), id); err != nil {
		a.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}
