package handlers

import (
	"net/http"
	"time"

	"medtrack/internal/clinic"
	"medtrack/models"
)

type usageResponse struct {
	ID             uint        `json:"id"`
	MedicationID   uint        `json:"medication_id"`
	MedicationName string      `json:"medication_name,omitempty"`
	Date           models.Date `json:"date"`
	QuantityUsed   int         `json:"quantity_used"`
	Notes          *string     `json:"notes"`
	CreatedAt      time.Time   `json:"created_at"`
}

func toUsageResponse(usage models.Usage) usageResponse {
	resp := usageResponse{
		ID:           usage.ID,
		MedicationID: usage.MedicationID,
		Date:         usage.Date,
		QuantityUsed: usage.QuantityUsed,
		Notes:        usage.Notes,
		CreatedAt:    usage.CreatedAt,
	}
	if usage.Medication != nil {
		resp.MedicationName = usage.Medication.Name
	}
	return resp
}

// UsageResource handles usage records. Usage rows are immutable, so only
// creation and listing exist:
//
//	GET  /api/usages  list, with each row's medication name resolved
//	POST /api/usages  record a usage and decrement stock
func (a *API) UsageResource(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listUsages(w, r)
	case http.MethodPost:
		a.createUsage(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (a *API) createUsage(w http.ResponseWriter, r *http.Request) {
	var input clinic.RecordUsageInput
	if err := decodeJSON(r, &input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	usage, err := a.clinic.RecordUsage(r.Context(), input)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUsageResponse(*usage))
}

func (a *API) listUsages(w http.ResponseWriter, r *http.Request) {
	usages, err := a.clinic.Usages(r.Context())
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	responses := make([]usageResponse, 0, len(usages))
	for _, usage := range usages {
		responses = append(responses, toUsageResponse(usage))
	}
	writeJSON(w, http.StatusOK, responses)
}
