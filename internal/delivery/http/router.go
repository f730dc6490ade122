package http

import (
	"net/http"

	"patient-records-service/internal/delivery/http/handler"
	"patient-records-service/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router            *mux.Router
	patientHandler    *handler.PatientHandler
	corsMiddleware    *middleware.CORSMiddleware
	loggingMiddleware *middleware.LoggingMiddleware
}

func NewRouter(
	patientHandler *handler.PatientHandler,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		patientHandler:    patientHandler,
		corsMiddleware:    corsMiddleware,
		loggingMiddleware: loggingMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// Health check
	r.router.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Patient records
	patients := r.router.PathPrefix("/v1/patients").Subrouter()
	patients.HandleFunc("", r.patientHandler.Create).Methods(http.MethodPost)
	patients.HandleFunc("", r.patientHandler.List).Methods(http.MethodGet)
	patients.HandleFunc("/{id}", r.patientHandler.Get).Methods(http.MethodGet)
	patients.HandleFunc("/{id}", r.patientHandler.Update).Methods(http.MethodPatch)
	patients.HandleFunc("/{id}/emergency-contact", r.patientHandler.ReplaceEmergencyContact).Methods(http.MethodPut)
	patients.HandleFunc("/{id}/emergency-contact", r.patientHandler.DeleteEmergencyContact).Methods(http.MethodDelete)
	patients.HandleFunc("/{id}/insurance-policy", r.patientHandler.ReplaceInsurancePolicy).Methods(http.MethodPut)
	patients.HandleFunc("/{id}/insurance-policy", r.patientHandler.DeleteInsurancePolicy).Methods(http.MethodDelete)

	r.router.Use(r.corsMiddleware.Handle)
	r.router.Use(r.loggingMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
