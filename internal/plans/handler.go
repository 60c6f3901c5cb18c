package plans

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymrats/internal/apperrors"
	"github.com/2beens/gymrats/internal/auth"
	"github.com/2beens/gymrats/internal/telemetry/tracing"
	"github.com/2beens/gymrats/pkg"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/training", h.HandleSaveTraining).Methods("POST", "OPTIONS").Name("save-training")
	r.HandleFunc("/training", h.HandleGetTraining).Methods("GET", "OPTIONS").Name("get-training")
	r.HandleFunc("/nutrition", h.HandleSaveNutrition).Methods("POST", "OPTIONS").Name("save-nutrition")
	r.HandleFunc("/nutrition", h.HandleGetNutrition).Methods("GET", "OPTIONS").Name("get-nutrition")
}

func (h *Handler) HandleSaveTraining(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.saveTraining")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		apperrors.WriteHTTP(w, apperrors.Unauthorized("plans.saveTraining", "not authenticated"))
		return
	}

	var req SaveTrainingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("save training, unmarshal json params: %s", err)
		apperrors.WriteHTTP(w, apperrors.Validation("plans.saveTraining", "invalid request body"))
		return
	}

	plan, err := h.service.SaveTraining(ctx, userID, req)
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, map[string]any{
		"message":  "training plan saved",
		"training": plan,
	})
}

func (h *Handler) HandleGetTraining(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.getTraining")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		apperrors.WriteHTTP(w, apperrors.Unauthorized("plans.getTraining", "not authenticated"))
		return
	}

	plan, err := h.service.ActiveTraining(ctx, userID)
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, plan)
}

func (h *Handler) HandleSaveNutrition(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.saveNutrition")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		apperrors.WriteHTTP(w, apperrors.Unauthorized("plans.saveNutrition", "not authenticated"))
		return
	}

	var req SaveNutritionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("save nutrition, unmarshal json params: %s", err)
		apperrors.WriteHTTP(w, apperrors.Validation("plans.saveNutrition", "invalid request body"))
		return
	}

	plan, err := h.service.SaveNutrition(ctx, userID, req)
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "nutrition plan saved",
		"plan":    plan,
	})
}

func (h *Handler) HandleGetNutrition(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.getNutrition")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		apperrors.WriteHTTP(w, apperrors.Unauthorized("plans.getNutrition", "not authenticated"))
		return
	}

	plan, err := h.service.ActiveNutrition(ctx, userID)
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, plan)
}
