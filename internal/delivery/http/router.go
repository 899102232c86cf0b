package http

import (
	"net/http"

	"doctor-booking/internal/delivery/http/handler"
	"doctor-booking/internal/delivery/http/middleware"
	"doctor-booking/pkg/metrics"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Router struct {
	router             *mux.Router
	log                *logrus.Logger
	doctorHandler      *handler.DoctorHandler
	appointmentHandler *handler.AppointmentHandler
	auditLogHandler    *handler.AuditLogHandler
	corsMiddleware     *middleware.CORSMiddleware
	metrics            *metrics.Metrics
}

// NewRouter wires the API routes. A nil metrics disables /metrics and request instrumentation.
func NewRouter(
	log *logrus.Logger,
	doctorHandler *handler.DoctorHandler,
	appointmentHandler *handler.AppointmentHandler,
	auditLogHandler *handler.AuditLogHandler,
	corsMiddleware *middleware.CORSMiddleware,
	m *metrics.Metrics,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		log:                log,
		doctorHandler:      doctorHandler,
		appointmentHandler: appointmentHandler,
		auditLogHandler:    auditLogHandler,
		corsMiddleware:     corsMiddleware,
		metrics:            m,
	}
}

func (r *Router) Setup() *mux.Router {
	// Outermost first
	r.router.Use(middleware.RequestID)
	r.router.Use(middleware.NewRecoveryMiddleware(r.log).Handle)
	r.router.Use(middleware.NewLoggerMiddleware(r.log).Handle)
	if r.metrics != nil {
		r.router.Use(middleware.NewMetricsMiddleware(r.metrics).Handle)
		r.router.Handle("/metrics", r.metrics.Handler()).Methods(http.MethodGet)
	}
	r.router.Use(r.corsMiddleware.Handle)

	// Preflight requests only reach the CORS middleware through a matching route
	r.router.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, req *http.Request) {})

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Doctors
	doctors := api.PathPrefix("/doctors").Subrouter()
	doctors.HandleFunc("", r.doctorHandler.CreateDoctor).Methods(http.MethodPost)
	doctors.HandleFunc("", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)
	doctors.HandleFunc("/search", r.doctorHandler.SearchDoctors).Methods(http.MethodGet)
	doctors.HandleFunc("/email/{email}", r.doctorHandler.GetDoctorByEmail).Methods(http.MethodGet)
	doctors.HandleFunc("/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	doctors.HandleFunc("/{id}", r.doctorHandler.UpdateDoctor).Methods(http.MethodPut)
	doctors.HandleFunc("/{id}", r.doctorHandler.DeleteDoctor).Methods(http.MethodDelete)
	doctors.HandleFunc("/{id}/password", r.doctorHandler.ChangePassword).Methods(http.MethodPut)

	// Appointment slots
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.HandleFunc("", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	appointments.HandleFunc("", r.appointmentHandler.ListAppointments).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.UpdateAppointment).Methods(http.MethodPut)
	appointments.HandleFunc("/{id}", r.appointmentHandler.DeleteAppointment).Methods(http.MethodDelete)

	// Audit trail
	api.HandleFunc("/audit-logs", r.auditLogHandler.ListAuditLogs).Methods(http.MethodGet)
	api.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
