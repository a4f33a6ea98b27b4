package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"medtrack/internal/clinic"
	"medtrack/models"
)

var testDBCounter atomic.Int64

func newTestAPI(t *testing.T) *API {
	t.Helper()

	dsn := fmt.Sprintf("file:handlers-test-%d?mode=memory&cache=shared", testDBCounter.Add(1))
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	if err := database.AutoMigrate(&models.Medication{}, &models.Patient{}, &models.Usage{}); err != nil {
		t.Fatalf("migrate schema: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return NewAPI(clinic.NewService(database))
}

func doJSON(t *testing.T, handler http.HandlerFunc, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
}

func createTestMedication(t *testing.T, api *API, name, category string, stock, threshold int) models.Medication {
	t.Helper()
	rr := doJSON(t, api.MedicationResource, http.MethodPost, "/api/medications", map[string]any{
		"name":              name,
		"category":          category,
		"stock_available":   stock,
		"reorder_threshold": threshold,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create medication returned %d: %s", rr.Code, rr.Body.String())
	}
	var medication models.Medication
	decodeBody(t, rr, &medication)
	return medication
}

func createTestPatient(t *testing.T, api *API, name string, gender models.Gender, treatmentDate string) models.Patient {
	t.Helper()
	rr := doJSON(t, api.PatientResource, http.MethodPost, "/api/patients", map[string]any{
		"name":           name,
		"age":            30,
		"gender":         gender,
		"address":        "Jl. Melati 12",
		"contact":        "0812-555-0100",
		"treatment_date": treatmentDate,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create patient returned %d: %s", rr.Code, rr.Body.String())
	}
	var patient models.Patient
	decodeBody(t, rr, &patient)
	return patient
}
