package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"medtrack/internal/clinic"
	applog "medtrack/internal/log"
)

// PatientResource handles REST-style interactions for patient records:
//
//	GET    /api/patients          list
//	POST   /api/patients          create
//	GET    /api/patients/search   substring search (?q=); blank query matches nothing
//	PUT    /api/patients/{id}     partial update
//	DELETE /api/patients/{id}     unconditional delete
func (a *API) PatientResource(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/patients")
	path = strings.Trim(path, "/")

	switch path {
	case "":
		switch r.Method {
		case http.MethodGet:
			a.listPatients(w, r)
		case http.MethodPost:
			a.createPatient(w, r)
		default:
			methodNotAllowed(w)
		}
		return
	case "search":
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		a.searchPatients(w, r)
		return
	}

	idValue, err := strconv.ParseUint(path, 10, 64)
	if err != nil {
		applog.Debug(r.Context(), "invalid patient identifier", "identifier", path, "error", err)
		http.NotFound(w, r)
		return
	}
	patientID := uint(idValue)

	switch r.Method {
	case http.MethodPut:
		a.updatePatient(w, r, patientID)
	case http.MethodDelete:
		a.deletePatient(w, r, patientID)
	default:
		methodNotAllowed(w)
	}
}

func (a *API) createPatient(w http.ResponseWriter, r *http.Request) {
	var input clinic.CreatePatientInput
	if err := decodeJSON(r, &input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	patient, err := a.clinic.CreatePatient(r.Context(), input)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, patient)
}

func (a *API) listPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := a.clinic.Patients(r.Context())
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, patients)
}

func (a *API) searchPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := a.clinic.SearchPatients(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, patients)
}

func (a *API) updatePatient(w http.ResponseWriter, r *http.Request, id uint) {
	var input clinic.UpdatePatientInput
	if err := decodeJSON(r, &input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	patient, err := a.clinic.UpdatePatient(r.Context(), id, input)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, patient)
}

func (a *API) deletePatient(w http.ResponseWriter, r *http.Request, id uint) {
	removed, err := a.clinic.DeletePatient(r.Context(), id)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: removed})
}
