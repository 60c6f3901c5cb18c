package reminders

import (
	"encoding/json"
	"net/http"
	"strconv"

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

func (h *Handler) SetupRoutes(mainRouter *mux.Router) {
	r := mainRouter.PathPrefix("/reminders").Subrouter()
	r.HandleFunc("", h.HandleList).Methods("GET", "OPTIONS").Name("list-reminders")
	r.HandleFunc("", h.HandleCreate).Methods("POST", "OPTIONS").Name("create-reminder")
	r.HandleFunc("/{id}", h.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-reminder")
	r.HandleFunc("/{id}", h.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-reminder")
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.reminders.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		apperrors.WriteHTTP(w, apperrors.Unauthorized("reminders.list", "not authenticated"))
		return
	}

	list, err := h.service.List(ctx, userID)
	if err != nil {
		log.Errorf("list reminders: %s", err)
		apperrors.WriteHTTP(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.reminders.create")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		apperrors.WriteHTTP(w, apperrors.Unauthorized("reminders.create", "not authenticated"))
		return
	}

	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		apperrors.WriteHTTP(w, apperrors.Validation("reminders.create", "invalid request body"))
		return
	}

	reminder, err := h.service.Create(ctx, userID, in)
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusCreated, reminder)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.reminders.update")
	defer span.End()

	userID, id, ok := reminderParams(w, r, "reminders.update")
	if !ok {
		return
	}

	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		apperrors.WriteHTTP(w, apperrors.Validation("reminders.update", "invalid request body"))
		return
	}

	reminder, err := h.service.Update(ctx, userID, id, in)
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, reminder)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.reminders.delete")
	defer span.End()

	userID, id, ok := reminderParams(w, r, "reminders.delete")
	if !ok {
		return
	}

	if err := h.service.Delete(ctx, userID, id); err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"message":"reminder deleted"}`)
}

func reminderParams(w http.ResponseWriter, r *http.Request, op string) (int64, int64, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		apperrors.WriteHTTP(w, apperrors.Unauthorized(op, "not authenticated"))
		return 0, 0, false
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		apperrors.WriteHTTP(w, apperrors.Validation(op, "invalid reminder id"))
		return 0, 0, false
	}

	return userID, id, true
}
