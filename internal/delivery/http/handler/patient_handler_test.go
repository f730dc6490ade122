package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"patient-records-service/internal/delivery/dto"
	deliveryHttp "patient-records-service/internal/delivery/http"
	"patient-records-service/internal/delivery/http/handler"
	"patient-records-service/internal/delivery/http/middleware"
	"patient-records-service/internal/usecase"
	"patient-records-service/pkg/response"
	"patient-records-service/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// fakePatientUsecase returns canned results and records the ops it saw.
type fakePatientUsecase struct {
	patient *dto.PatientResponse
	list    *dto.PatientListResponse
	err     error
	calls   []string
}

func (f *fakePatientUsecase) Create(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	f.calls = append(f.calls, "Create")
	return f.patient, f.err
}

func (f *fakePatientUsecase) List(ctx context.Context, search string, page, limit int) (*dto.PatientListResponse, error) {
	f.calls = append(f.calls, "List")
	return f.list, f.err
}

func (f *fakePatientUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error) {
	f.calls = append(f.calls, "GetByID")
	return f.patient, f.err
}

func (f *fakePatientUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	f.calls = append(f.calls, "Update")
	return f.patient, f.err
}

func (f *fakePatientUsecase) ReplaceEmergencyContact(ctx context.Context, id uuid.UUID, req *dto.EmergencyContactRequest) (*dto.PatientResponse, error) {
	f.calls = append(f.calls, "ReplaceEmergencyContact")
	return f.patient, f.err
}

func (f *fakePatientUsecase) DeleteEmergencyContact(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error) {
	f.calls = append(f.calls, "DeleteEmergencyContact")
	return f.patient, f.err
}

func (f *fakePatientUsecase) ReplaceInsurancePolicy(ctx context.Context, id uuid.UUID, req *dto.InsurancePolicyRequest) (*dto.PatientResponse, error) {
	f.calls = append(f.calls, "ReplaceInsurancePolicy")
	return f.patient, f.err
}

func (f *fakePatientUsecase) DeleteInsurancePolicy(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error) {
	f.calls = append(f.calls, "DeleteInsurancePolicy")
	return f.patient, f.err
}

func newTestServer(u usecase.PatientUsecase) http.Handler {
	log := logrus.New()
	log.SetOutput(io.Discard)

	h := handler.NewPatientHandler(u, validator.NewValidator())
	router := deliveryHttp.NewRouter(h, middleware.NewCORSMiddleware(), middleware.NewLoggingMiddleware(log))
	return router.Setup()
}

func doRequest(t *testing.T, srv http.Handler, method, path, body string) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	var envelope response.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("invalid response body %q: %v", rec.Body.String(), err)
	}
	return rec, envelope
}

const validCreateBody = `{
	"first_name": "Juan",
	"last_name": "Pérez",
	"date_of_birth": "1990-05-15",
	"gender": "masculino",
	"phone": "5551234567"
}`

func TestCreate_Created(t *testing.T) {
	fake := &fakePatientUsecase{patient: &dto.PatientResponse{ID: uuid.New(), PatientNumber: "PAT-00000001"}}
	srv := newTestServer(fake)

	rec, envelope := doRequest(t, srv, http.MethodPost, "/v1/patients", validCreateBody)
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
	if !envelope.Success {
		t.Error("expected success envelope")
	}
}

func TestCreate_ValidationFailure(t *testing.T) {
	fake := &fakePatientUsecase{}
	srv := newTestServer(fake)

	body := strings.Replace(validCreateBody, "5551234567", "123", 1)
	rec, envelope := doRequest(t, srv, http.MethodPost, "/v1/patients", body)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if envelope.Success {
		t.Error("expected failure envelope")
	}
	if len(fake.calls) != 0 {
		t.Errorf("usecase must not run on invalid input, got calls %v", fake.calls)
	}
}

func TestCreate_Conflict(t *testing.T) {
	fake := &fakePatientUsecase{err: usecase.ErrNationalIDExists}
	srv := newTestServer(fake)

	rec, _ := doRequest(t, srv, http.MethodPost, "/v1/patients", validCreateBody)
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestGet_InvalidIDIsNotFound(t *testing.T) {
	fake := &fakePatientUsecase{}
	srv := newTestServer(fake)

	rec, _ := doRequest(t, srv, http.MethodGet, "/v1/patients/not-a-uuid", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for malformed id", rec.Code)
	}
	if len(fake.calls) != 0 {
		t.Errorf("usecase must not run for malformed id, got calls %v", fake.calls)
	}
}

func TestGet_NotFound(t *testing.T) {
	fake := &fakePatientUsecase{err: usecase.ErrPatientNotFound}
	srv := newTestServer(fake)

	rec, _ := doRequest(t, srv, http.MethodGet, "/v1/patients/"+uuid.NewString(), "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestList_OK(t *testing.T) {
	fake := &fakePatientUsecase{list: &dto.PatientListResponse{
		Patients:   []dto.PatientResponse{{PatientNumber: "PAT-00000001"}},
		Page:       1,
		Limit:      10,
		Total:      1,
		TotalPages: 1,
	}}
	srv := newTestServer(fake)

	rec, envelope := doRequest(t, srv, http.MethodGet, "/v1/patients?search=PAT&page=1&limit=10", "")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if envelope.Meta == nil || envelope.Meta.Total != 1 || envelope.Meta.TotalPages != 1 {
		t.Errorf("unexpected meta: %+v", envelope.Meta)
	}
}

func TestUpdate_Conflict(t *testing.T) {
	fake := &fakePatientUsecase{err: usecase.ErrNationalIDExists}
	srv := newTestServer(fake)

	rec, _ := doRequest(t, srv, http.MethodPatch, "/v1/patients/"+uuid.NewString(), `{"national_id":"CURP-A"}`)
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestReplaceInsurancePolicy_BadDateFormat(t *testing.T) {
	fake := &fakePatientUsecase{}
	srv := newTestServer(fake)

	body := `{"provider":"Seguro Nacional","policy_number":"POL-1","end_date":"2025-12-31"}`
	rec, _ := doRequest(t, srv, http.MethodPut, "/v1/patients/"+uuid.NewString()+"/insurance-policy", body)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if len(fake.calls) != 0 {
		t.Errorf("usecase must not run on invalid input, got calls %v", fake.calls)
	}
}

func TestSubResourceRoutes(t *testing.T) {
	id := uuid.NewString()
	contactBody := `{"name":"María García","relationship":"Esposa","phone":"5559876543"}`
	policyBody := `{"provider":"Seguro Nacional","policy_number":"POL-1","end_date":"31/12/2025"}`

	tests := []struct {
		method string
		path   string
		body   string
		want   string
	}{
		{http.MethodPut, "/v1/patients/" + id + "/emergency-contact", contactBody, "ReplaceEmergencyContact"},
		{http.MethodDelete, "/v1/patients/" + id + "/emergency-contact", "", "DeleteEmergencyContact"},
		{http.MethodPut, "/v1/patients/" + id + "/insurance-policy", policyBody, "ReplaceInsurancePolicy"},
		{http.MethodDelete, "/v1/patients/" + id + "/insurance-policy", "", "DeleteInsurancePolicy"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			fake := &fakePatientUsecase{patient: &dto.PatientResponse{ID: uuid.MustParse(id)}}
			srv := newTestServer(fake)

			rec, _ := doRequest(t, srv, tt.method, tt.path, tt.body)
			if rec.Code != http.StatusOK {
				t.Errorf("status = %d, want 200", rec.Code)
			}
			if len(fake.calls) != 1 || fake.calls[0] != tt.want {
				t.Errorf("calls = %v, want [%s]", fake.calls, tt.want)
			}
		})
	}
}
