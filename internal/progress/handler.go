package progress

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymrats/internal/apperrors"
	"github.com/2beens/gymrats/internal/auth"
	"github.com/2beens/gymrats/internal/telemetry/tracing"
	"github.com/2beens/gymrats/pkg"
)

type completeDayRequest struct {
	DayName string `json:"dayName"`
}

type Handler struct {
	service *Service
	now     func() time.Time
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
		now:     time.Now,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/training/complete-day", h.HandleCompleteDay).Methods("POST", "OPTIONS").Name("complete-day")
	r.HandleFunc("/training/stats", h.HandleStats).Methods("GET", "OPTIONS").Name("training-stats")
	r.HandleFunc("/training/logs", h.HandleLogs).Methods("GET", "OPTIONS").Name("training-logs")
}

func (h *Handler) HandleCompleteDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.completeDay")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		apperrors.WriteHTTP(w, apperrors.Unauthorized("progress.completeDay", "not authenticated"))
		return
	}

	var req completeDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("complete day, unmarshal json params: %s", err)
		apperrors.WriteHTTP(w, apperrors.Validation("progress.completeDay", "invalid request body"))
		return
	}

	result, err := h.service.MarkDayComplete(ctx, userID, req.DayName, h.now())
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.stats")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		apperrors.WriteHTTP(w, apperrors.Unauthorized("progress.stats", "not authenticated"))
		return
	}

	stats, err := h.service.GetStats(ctx, userID, h.now())
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, stats)
}

func (h *Handler) HandleLogs(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.logs")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		apperrors.WriteHTTP(w, apperrors.Unauthorized("progress.logs", "not authenticated"))
		return
	}

	limit := 0
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil {
			apperrors.WriteHTTP(w, apperrors.Validation("progress.logs", "limit must be a number"))
			return
		}
		limit = parsed
	}

	logs, err := h.service.ListLogs(ctx, userID, limit)
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, logs)
}
