package misc

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymrats/internal/telemetry/tracing"
	"github.com/2beens/gymrats/pkg"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

type Handler struct {
	versionInfo string
	checks      map[string]HealthCheck
}

func NewHandler(versionInfo string, checks map[string]HealthCheck) *Handler {
	return &Handler{
		versionInfo: versionInfo,
		checks:      checks,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/", handler.handleRoot).Methods("GET", "OPTIONS").Name("root")
	mainRouter.HandleFunc("/health", handler.handleHealth).Methods("GET", "OPTIONS").Name("health")
	mainRouter.HandleFunc("/version", handler.handleGetVersionInfo).Methods("GET", "OPTIONS").Name("version")
}

func (handler *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteResponse(w, pkg.ContentType.Text, "gymrats backend, keep lifting", http.StatusOK)
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func (handler *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.health")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	names := make([]string, 0, len(handler.checks))
	for name := range handler.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := healthResponse{
		Status: "ok",
		Checks: make(map[string]string, len(names)),
	}
	for _, name := range names {
		if err := handler.checks[name](ctx); err != nil {
			log.Errorf("health check [%s]: %s", name, err)
			resp.Checks[name] = "down"
			resp.Status = "degraded"
			continue
		}
		resp.Checks[name] = "ok"
	}
	span.SetAttributes(attribute.String("health.status", resp.Status))

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	pkg.WriteJSON(w, status, resp)
}

func (handler *Handler) handleGetVersionInfo(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteResponse(w, pkg.ContentType.Text, handler.versionInfo, http.StatusOK)
}
