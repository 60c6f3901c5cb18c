package posts

import (
	"encoding/json"
	"net/http"
	"strconv"

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

type textRequest struct {
	Text string `json:"text"`
}

func (h *Handler) SetupRoutes(mainRouter *mux.Router) {
	r := mainRouter.PathPrefix("/posts").Subrouter()
	r.HandleFunc("", h.HandleFeed).Methods("GET", "OPTIONS").Name("list-posts")
	r.HandleFunc("", h.HandleCreate).Methods("POST", "OPTIONS").Name("create-post")
	r.HandleFunc("/{id}/like", h.HandleLike).Methods("POST", "OPTIONS").Name("like-post")
	r.HandleFunc("/{id}/like", h.HandleUnlike).Methods("DELETE", "OPTIONS").Name("unlike-post")
	r.HandleFunc("/{id}/comments", h.HandleComment).Methods("POST", "OPTIONS").Name("comment-post")
}

func (h *Handler) HandleFeed(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.posts.feed")
	defer span.End()

	if _, ok := auth.UserIDFromContext(ctx); !ok {
		apperrors.WriteHTTP(w, apperrors.Unauthorized("posts.feed", "not authenticated"))
		return
	}

	var (
		limit    int
		beforeID int64
		err      error
	)
	query := r.URL.Query()
	if param := query.Get("limit"); param != "" {
		if limit, err = strconv.Atoi(param); err != nil {
			apperrors.WriteHTTP(w, apperrors.Validation("posts.feed", "limit must be a number"))
			return
		}
	}
	if param := query.Get("before"); param != "" {
		if beforeID, err = strconv.ParseInt(param, 10, 64); err != nil {
			apperrors.WriteHTTP(w, apperrors.Validation("posts.feed", "before must be a post id"))
			return
		}
	}

	feed, err := h.service.Feed(ctx, beforeID, limit)
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, feed)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.posts.create")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		apperrors.WriteHTTP(w, apperrors.Unauthorized("posts.create", "not authenticated"))
		return
	}

	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteHTTP(w, apperrors.Validation("posts.create", "invalid request body"))
		return
	}

	post, err := h.service.Create(ctx, userID, req.Text)
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusCreated, post)
}

func (h *Handler) HandleLike(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.posts.like")
	defer span.End()

	userID, postID, ok := h.userAndPost(w, r, "posts.like")
	if !ok {
		return
	}

	if err := h.service.Like(ctx, userID, postID); err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	pkg.WriteJSONResponseOK(w, "post liked")
}

func (h *Handler) HandleUnlike(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.posts.unlike")
	defer span.End()

	userID, postID, ok := h.userAndPost(w, r, "posts.unlike")
	if !ok {
		return
	}

	if err := h.service.Unlike(ctx, userID, postID); err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	pkg.WriteJSONResponseOK(w, "post unliked")
}

func (h *Handler) HandleComment(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.posts.comment")
	defer span.End()

	userID, postID, ok := h.userAndPost(w, r, "posts.comment")
	if !ok {
		return
	}

	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteHTTP(w, apperrors.Validation("posts.comment", "invalid request body"))
		return
	}

	comment, err := h.service.Comment(ctx, userID, postID, req.Text)
	if err != nil {
		apperrors.WriteHTTP(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusCreated, comment)
}

func (h *Handler) userAndPost(w http.ResponseWriter, r *http.Request, op string) (int64, int64, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		apperrors.WriteHTTP(w, apperrors.Unauthorized(op, "not authenticated"))
		return 0, 0, false
	}
	postID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || postID <= 0 {
		apperrors.WriteHTTP(w, apperrors.Validation(op, "invalid post id"))
		return 0, 0, false
	}
	return userID, postID, true
}
