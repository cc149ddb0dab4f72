package handler

import (
	"github.com/Dan9191/ambient-finance/internal/config"
	"github.com/Dan9191/ambient-finance/internal/middleware"
	"github.com/gorilla/mux"
)

// NewRouter wires public and protected routes
func NewRouter(h *Handler, cfg *config.Config) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Logging(h.log))

	// Public routes
	r.HandleFunc("/health", h.Health).Methods("GET")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/metrics", h.Metrics).Methods("GET")
	r.HandleFunc("/dashboard", h.Dashboard).Methods("GET")
	r.HandleFunc("/flags", h.Flags).Methods("GET")
	r.HandleFunc("/simulate/expense", h.SimulateExpense).Methods("GET")
	r.HandleFunc("/simulate/savings", h.SimulateSavings).Methods("GET")
	r.HandleFunc("/key-rate", h.KeyRate).Methods("GET")

	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/decision", h.Decision).Methods("POST")
	authRouter.HandleFunc("/sessions/{id}", h.Session).Methods("GET")

	return r
}
