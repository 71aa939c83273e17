package errors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorFormatting(t *testing.T) {
	base := fmt.Errorf("open failed")
	err := NewStorageError("cannot read workbook", base)
	assert.Equal(t, "[STORAGE] cannot read workbook: open failed", err.Error())
	assert.True(t, errors.Is(err, base))

	plain := NewAppValidationError("empty filter")
	assert.Equal(t, "[VALIDATION] empty filter", plain.Error())
	assert.Nil(t, plain.Unwrap())
}

func TestAppErrorWithContext(t *testing.T) {
	err := NewParsingError("bad row", nil).
		WithContext("sheet", "Sheet1").
		WithContext("row", 7)
	assert.Equal(t, "Sheet1", err.Context["sheet"])
	assert.Equal(t, 7, err.Context["row"])
}

func TestProblemDetailsMarshalWithExtensions(t *testing.T) {
	p := NewProblemDetails(http.StatusBadRequest, TypeValidation, "Validation Failed", "bad input", "/api/x")
	p.WithExtension("invalid_fields", []string{"regions"})

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, TypeValidation, got["type"])
	assert.Equal(t, float64(400), got["status"])
	assert.Equal(t, []interface{}{"regions"}, got["invalid_fields"])
}

func TestErrorToProblemMapping(t *testing.T) {
	h := NewErrorHandler(nil)
	req := httptest.NewRequest(http.MethodPost, "/api/dashboard/volume-share", nil)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{"context canceled", context.Canceled, 499, TypeRequestCanceled},
		{"deadline exceeded", context.DeadlineExceeded, http.StatusGatewayTimeout, TypeRequestTimeout},
		{"api error", ErrNotFound, http.StatusNotFound, TypeNotFound},
		{"app validation", NewAppValidationError("empty"), http.StatusBadRequest, TypeValidation},
		{"app storage", NewStorageError("load", nil), http.StatusInternalServerError, TypeDatasetLoad},
		{"app parsing", NewParsingError("schema", nil), http.StatusInternalServerError, TypeDatasetSchema},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, TypeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := h.ErrorToProblem(req, tt.err)
			assert.Equal(t, tt.wantStatus, p.Status)
			assert.Equal(t, tt.wantType, p.Type)
			assert.Equal(t, "/api/dashboard/volume-share", p.Instance)
		})
	}
}

func TestErrorToProblemPassesThroughProblem(t *testing.T) {
	h := NewErrorHandler(nil)
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/filters", nil)

	original := NewProblemDetails(http.StatusNotFound, TypeDataNotFound, "No Data", "dataset empty", "")
	got := h.ErrorToProblem(req, original)
	assert.Same(t, original, got)
	assert.Equal(t, "/api/dashboard/filters", got.Instance)
}

func TestHandleErrorWritesProblemJSON(t *testing.T) {
	h := NewErrorHandler(nil)
	req := httptest.NewRequest(http.MethodGet, "/api/healthz", nil)
	rec := httptest.NewRecorder()

	h.HandleError(rec, req, NewNotFoundError("dataset"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, TypeNotFound, body["type"])
	assert.Equal(t, "dataset not found", body["detail"])
}

func TestAPIErrorHelpers(t *testing.T) {
	ve := ErrValidation("regions", "must not be empty")
	assert.Equal(t, http.StatusBadRequest, ve.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", ve.ErrorCode)

	de := DatasetError(fmt.Errorf("no such file"))
	assert.Equal(t, http.StatusInternalServerError, de.StatusCode)
	assert.Equal(t, "DATASET_LOAD_FAILED", de.ErrorCode)
	assert.Equal(t, "no such file", de.Details)
}
