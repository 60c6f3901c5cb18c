package achievements

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

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/achievements", h.HandleList).Methods("GET", "OPTIONS").Name("list-achievements")
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.achievements.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		apperrors.WriteHTTP(w, apperrors.Unauthorized("achievements.list", "not authenticated"))
		return
	}

	list, err := h.service.ListForUser(ctx, userID)
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, list)
}
