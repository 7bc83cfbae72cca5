package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/finsight/forecast-service/internal/forecast"
	"github.com/finsight/forecast-service/internal/mlmodel"
	"github.com/finsight/forecast-service/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	svc    *service.Service
	handle *mlmodel.Handle
	log    *logrus.Logger
}

func NewHandler(svc *service.Service, handle *mlmodel.Handle, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, handle: handle, log: log}
}

// Health reports service status and whether the model artifact is loaded
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "OK",
		"message":      "Spend forecast service is running",
		"model_loaded": h.handle.Available(),
		"timestamp":    time.Now().Format(time.RFC3339),
	})
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.svc.Register(req.Username, req.Email, req.Password)
	if err != nil {
		h.log.Errorf("Registration failed: %v", err)
		writeError(w, http.StatusInternalServerError, "registration failed")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "user": user})
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "token": token})
}

// PredictWeekly produces the 7-day forecast for the next full week
func (h *Handler) PredictWeekly(w http.ResponseWriter, r *http.Request) {
	raw, ok := decodeRaw(w, r)
	if !ok {
		return
	}

	resp, err := h.svc.PredictWeekly(r.Context(), raw)
	if err != nil {
		h.writePipelineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// PredictDaily produces a single-day forecast for tomorrow
func (h *Handler) PredictDaily(w http.ResponseWriter, r *http.Request) {
	raw, ok := decodeRaw(w, r)
	if !ok {
		return
	}

	resp, err := h.svc.PredictDaily(r.Context(), raw)
	if err != nil {
		h.writePipelineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// History returns the caller's recent stored forecasts
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	records, err := h.svc.History(r.Context(), limit)
	if err != nil {
		h.log.Errorf("Failed to load prediction history: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load history")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "predictions": records})
}

// writePipelineError maps the pipeline error taxonomy to HTTP status
// codes: client-correctable input and validation failures are 400, a
// never-loaded model is 503, anything else is a generic 500. Model
// inference failures never reach here; the engine recovers them via the
// fallback path.
func (h *Handler) writePipelineError(w http.ResponseWriter, err error) {
	var inputErr *forecast.InputError
	var validationErr *forecast.ValidationError
	switch {
	case errors.As(err, &inputErr):
		writeError(w, http.StatusBadRequest, inputErr.Error())
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, forecast.ErrModelUnavailable):
		writeError(w, http.StatusServiceUnavailable, "prediction model not loaded")
	default:
		h.log.Errorf("Prediction failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to generate prediction")
	}
}

func decodeRaw(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}
	return raw, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "error": msg})
}
