package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Dan9191/ambient-finance/internal/agent"
	"github.com/Dan9191/ambient-finance/internal/middleware"
	"github.com/Dan9191/ambient-finance/internal/models"
	"github.com/Dan9191/ambient-finance/internal/presentation"
	"github.com/Dan9191/ambient-finance/internal/service"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Handler exposes the service over HTTP
type Handler struct {
	svc      *service.Service
	sessions *agent.Sessions
	rates    agent.RateSource
	log      *logrus.Logger
}

// NewHandler creates a handler. rates may be nil, which disables /key-rate.
func NewHandler(svc *service.Service, sessions *agent.Sessions, rates agent.RateSource, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, sessions: sessions, rates: rates, log: log}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type decisionRequest struct {
	Question  string `json:"question"`
	Mode      string `json:"mode"`
	SessionID string `json:"session_id"`
}

type dashboardResponse struct {
	models.DashboardMetrics
	Gauge string `json:"gauge"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorf("Failed to encode response: %v", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *Handler) internalError(w http.ResponseWriter, err error) {
	h.log.Errorf("Request failed: %v", err)
	h.writeError(w, http.StatusInternalServerError, "internal error")
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Login handles operator authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	token, err := h.svc.Login(req.Email, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		h.writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	if err != nil {
		h.internalError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Metrics returns the full pipeline snapshot
func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.Overview(r.Context(), r.URL.Query().Get("mode"))
	if err != nil {
		h.internalError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, snap)
}

// Dashboard returns the headline ratios with a gauge band for the savings rate
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.Overview(r.Context(), "")
	if err != nil {
		h.internalError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, dashboardResponse{
		DashboardMetrics: snap.Dashboard,
		Gauge:            presentation.GaugeBand(snap.Dashboard.SavingsRate),
	})
}

// Flags returns the rule-engine flags
func (h *Handler) Flags(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.Overview(r.Context(), "")
	if err != nil {
		h.internalError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string][]models.Flag{"flags": snap.Flags})
}

// SimulateExpense projects savings after ?amount=
func (h *Handler) SimulateExpense(w http.ResponseWriter, r *http.Request) {
	h.simulate(w, r, "amount", h.svc.SimulateLargeExpense)
}

// SimulateSavings projects savings after saving an extra ?percent= of income
func (h *Handler) SimulateSavings(w http.ResponseWriter, r *http.Request) {
	h.simulate(w, r, "percent", h.svc.SimulateSavingsIncrease)
}

func (h *Handler) simulate(w http.ResponseWriter, r *http.Request, param string,
	run func(ctx context.Context, v float64) (models.Scenario, error)) {
	v, err := strconv.ParseFloat(r.URL.Query().Get(param), 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid or missing "+param)
		return
	}
	scenario, err := run(r.Context(), v)
	if err != nil {
		h.internalError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, scenario)
}

// Decision answers a question; a model reply that is not JSON still yields 200 with an error record
func (h *Handler) Decision(w http.ResponseWriter, r *http.Request) {
	var req decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.sessions.GetOrCreate(req.SessionID)
	if errors.Is(err, agent.ErrSessionNotFound) {
		h.writeError(w, http.StatusNotFound, err.Error())
		return
	}

	decision, err := h.svc.Decide(r.Context(), session, req.Question, req.Mode)
	if err != nil {
		h.internalError(w, err)
		return
	}
	subject, _ := middleware.Subject(r.Context())
	h.log.WithFields(logrus.Fields{
		"subject":    subject,
		"session_id": session.ID,
		"failed":     decision.Failed(),
	}).Info("Decision served")
	h.writeJSON(w, http.StatusOK, presentation.NewDecisionView(session.ID, decision))
}

// Session returns the conversation history of a session
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Get(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"session_id": session.ID,
		"history":    session.History(),
	})
}

// KeyRate returns the benchmark key rate
func (h *Handler) KeyRate(w http.ResponseWriter, r *http.Request) {
	if h.rates == nil {
		h.writeError(w, http.StatusServiceUnavailable, "key rate source not configured")
		return
	}
	rate, err := h.rates.KeyRate(r.Context())
	if err != nil {
		h.log.Errorf("Failed to get key rate: %v", err)
		h.writeError(w, http.StatusBadGateway, "failed to get key rate")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]float64{"key_rate": rate})
}
