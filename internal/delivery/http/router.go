package http

import (
	"net/http"

	"health-consultancy-api/internal/delivery/http/handler"
	"health-consultancy-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router           *mux.Router
	doctorHandler    *handler.DoctorHandler
	bookingHandler   *handler.BookingHandler
	loggerMiddleware *middleware.LoggerMiddleware
	corsMiddleware   *middleware.CORSMiddleware
}

func NewRouter(
	doctorHandler *handler.DoctorHandler,
	bookingHandler *handler.BookingHandler,
	loggerMiddleware *middleware.LoggerMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:           mux.NewRouter(),
		doctorHandler:    doctorHandler,
		bookingHandler:   bookingHandler,
		loggerMiddleware: loggerMiddleware,
		corsMiddleware:   corsMiddleware,
	}
}

// Setup registers all routes. CORS wraps the router itself so that
// preflight requests are answered even for routes without an OPTIONS method.
func (r *Router) Setup() http.Handler {
	r.router.HandleFunc("/", r.welcome).Methods(http.MethodGet)
	r.router.HandleFunc("/favicon.ico", r.favicon).Methods(http.MethodGet)
	r.router.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	api := r.router.PathPrefix("/api").Subrouter()

	// Doctors
	api.HandleFunc("/doctors", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}/availability", r.doctorHandler.GetAvailability).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}/appointments", r.doctorHandler.GetAppointments).Methods(http.MethodGet)

	// Appointments
	api.HandleFunc("/appointments/book", r.bookingHandler.BookAppointment).Methods(http.MethodPost)

	r.router.Use(r.loggerMiddleware.Handle)

	return r.corsMiddleware.Handle(r.router)
}

func (r *Router) welcome(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Welcome to Health Consultancy"))
}

func (r *Router) favicon(w http.ResponseWriter, req *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
