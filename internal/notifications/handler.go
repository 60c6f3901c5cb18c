package notifications

import (
	"net/http"

	"github.com/gorilla/mux"

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
	r := mainRouter.PathPrefix("/notifications").Subrouter()
	r.HandleFunc("", h.HandleList).Methods("GET", "OPTIONS").Name("list-notifications")
	r.HandleFunc("/read-all", h.HandleReadAll).Methods("POST", "OPTIONS").Name("read-all-notifications")
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.notifications.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		apperrors.WriteHTTP(w, apperrors.Unauthorized("notifications.list", "not authenticated"))
		return
	}

	list, err := h.service.List(ctx, userID)
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) HandleReadAll(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.notifications.readAll")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		apperrors.WriteHTTP(w, apperrors.Unauthorized("notifications.readAll", "not authenticated"))
		return
	}

	updated, err := h.service.MarkAllRead(ctx, userID)
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "all notifications marked as read",
		"updated": updated,
	})
}
