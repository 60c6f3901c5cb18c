package users

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymrats/internal/apperrors"
	"github.com/2beens/gymrats/internal/auth"
	"github.com/2beens/gymrats/internal/middleware"
	"github.com/2beens/gymrats/internal/telemetry/metrics"
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

func (h *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	metricsManager *metrics.Manager,
	loginAllowedPerMin int,
) {
	// rate limit the credential endpoints per client ip
	limited := middleware.RateLimit(rateLimiter, "login", loginAllowedPerMin, metricsManager)

	authRouter := mainRouter.PathPrefix("/auth").Subrouter()
	authRouter.Handle("/register", limited(http.HandlerFunc(h.HandleRegister))).Methods("POST", "OPTIONS").Name("register")
	authRouter.Handle("/login", limited(http.HandlerFunc(h.HandleLogin))).Methods("POST", "OPTIONS").Name("login")
	authRouter.HandleFunc("/logout", h.HandleLogout).Methods("POST", "OPTIONS").Name("logout")
	authRouter.HandleFunc("/profile", h.HandleProfile).Methods("GET", "OPTIONS").Name("profile")

	mainRouter.HandleFunc("/users/{username}", h.HandlePublicProfile).Methods("GET", "OPTIONS").Name("public-profile")
	mainRouter.HandleFunc("/users/{userId}/follow", h.HandleFollow).Methods("POST", "OPTIONS").Name("follow")
	mainRouter.HandleFunc("/users/{userId}/unfollow", h.HandleUnfollow).Methods("POST", "OPTIONS").Name("unfollow")

	mainRouter.HandleFunc("/push/subscribe", h.HandlePushSubscribe).Methods("POST", "OPTIONS").Name("push-subscribe")
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.register")
	defer span.End()

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("register, unmarshal json params: %s", err)
		apperrors.WriteHTTP(w, apperrors.Validation("users.register", "invalid request body"))
		return
	}

	result, err := h.service.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusCreated, map[string]any{
		"message":   "user registered successfully",
		"token":     result.Token,
		"expiresAt": result.ExpiresAt,
	})
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.login")
	defer span.End()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("login, unmarshal json params: %s", err)
		apperrors.WriteHTTP(w, apperrors.Validation("users.login", "invalid request body"))
		return
	}

	result, err := h.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, map[string]any{
		"token":     result.Token,
		"expiresAt": result.ExpiresAt,
	})
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.logout")
	defer span.End()

	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		apperrors.WriteHTTP(w, apperrors.Unauthorized("users.logout", "not authenticated"))
		return
	}

	if err := h.service.Logout(ctx, claims); err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"message":"logged out"}`)
}

func (h *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.profile")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		apperrors.WriteHTTP(w, apperrors.Unauthorized("users.profile", "not authenticated"))
		return
	}

	profile, err := h.service.Profile(ctx, userID)
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, profile)
}

func (h *Handler) HandlePublicProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.publicProfile")
	defer span.End()

	viewerID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		apperrors.WriteHTTP(w, apperrors.Unauthorized("users.publicProfile", "not authenticated"))
		return
	}

	profile, err := h.service.PublicProfile(ctx, viewerID, mux.Vars(r)["username"])
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, profile)
}

func (h *Handler) HandleFollow(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.follow")
	defer span.End()

	claims, followeeID, ok := followParams(w, r, "users.follow")
	if !ok {
		return
	}

	if err := h.service.Follow(ctx, claims, followeeID); err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"message":"user followed"}`)
}

func (h *Handler) HandleUnfollow(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.unfollow")
	defer span.End()

	claims, followeeID, ok := followParams(w, r, "users.unfollow")
	if !ok {
		return
	}

	if err := h.service.Unfollow(ctx, claims, followeeID); err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"message":"user unfollowed"}`)
}

type pushSubscribeRequest struct {
	Subscription *PushSubscription `json:"subscription"`
}

func (h *Handler) HandlePushSubscribe(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.pushSubscribe")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		apperrors.WriteHTTP(w, apperrors.Unauthorized("users.pushSubscribe", "not authenticated"))
		return
	}

	var req pushSubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Subscription == nil {
		apperrors.WriteHTTP(w, apperrors.Validation("users.pushSubscribe", "subscription is required"))
		return
	}

	if err := h.service.SavePushSubscription(ctx, userID, *req.Subscription); err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusCreated, map[string]string{"message": "subscription saved"})
}

func followParams(w http.ResponseWriter, r *http.Request, op string) (*auth.Claims, int64, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		apperrors.WriteHTTP(w, apperrors.Unauthorized(op, "not authenticated"))
		return nil, 0, false
	}

	followeeID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil || followeeID <= 0 {
		apperrors.WriteHTTP(w, apperrors.Validation(op, "invalid user id"))
		return nil, 0, false
	}

	return claims, followeeID, true
}
