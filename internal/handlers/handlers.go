package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/KomatechBot/geien-fes2/internal/cache"
	"github.com/KomatechBot/geien-fes2/internal/cms"
	"github.com/KomatechBot/geien-fes2/internal/engagement"
	"github.com/KomatechBot/geien-fes2/internal/metrics"
	"github.com/KomatechBot/geien-fes2/internal/models"
	"github.com/KomatechBot/geien-fes2/internal/token"
	"github.com/go-chi/chi/v5"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	likes    *engagement.LikeService
	comments *engagement.CommentService
	store    *cms.Client
	cache    *cache.Cache
	cookies  token.CookieTransport
	metrics  *metrics.Engagement
	log      *slog.Logger
}

// NewHandler creates a new Handler instance
func NewHandler(
	likes *engagement.LikeService,
	comments *engagement.CommentService,
	store *cms.Client,
	contentCache *cache.Cache,
	cookies token.CookieTransport,
	m *metrics.Engagement,
	log *slog.Logger,
) *Handler {
	return &Handler{
		likes:    likes,
		comments: comments,
		store:    store,
		cache:    contentCache,
		cookies:  cookies,
		metrics:  m,
		log:      log.With("component", "handlers"),
	}
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondRaw writes an already-encoded JSON response
func respondRaw(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

// respondError writes a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// Like handles POST /api/like
func (h *Handler) Like(w http.ResponseWriter, r *http.Request) {
	var req models.LikeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cookieValue := h.cookies.Read(r, token.ActionLike, req.Endpoint, req.ContentID)

	result, err := h.likes.Like(r.Context(), req.Endpoint, req.ContentID, cookieValue)
	if err != nil {
		if engagement.IsValidationError(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if cms.IsNotFound(err) {
			respondError(w, http.StatusNotFound, "Content not found")
			return
		}
		h.log.ErrorContext(r.Context(), "like failed", "endpoint", req.Endpoint, "contentId", req.ContentID, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to update likes")
		return
	}

	if result.AlreadyLiked {
		h.metrics.Duplicates.WithLabelValues("like").Inc()
		respondJSON(w, http.StatusOK, map[string]string{"message": "Already liked"})
		return
	}

	h.metrics.Likes.WithLabelValues(req.Endpoint).Inc()
	h.cookies.Write(w, token.ActionLike, req.Endpoint, req.ContentID, result.Token)
	respondJSON(w, http.StatusOK, map[string]int{"likes": result.Likes})
}

// ListComments handles GET /api/comments. Upstream failures degrade to an
// empty list so detail pages stay renderable; the failure is logged and
// counted instead.
func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	targetType := r.URL.Query().Get("targetType")
	targetID := r.URL.Query().Get("targetId")

	comments, err := h.comments.List(r.Context(), targetType, targetID)
	if err != nil {
		if !engagement.IsValidationError(err) {
			h.log.ErrorContext(r.Context(), "comment list degraded to empty", "targetType", targetType, "targetId", targetID, "error", err)
			h.metrics.StoreReadErrors.WithLabelValues("comments").Inc()
		}
		comments = []models.Comment{}
	}

	respondJSON(w, http.StatusOK, map[string]any{"comments": comments})
}

// CreateComment handles POST /api/comments
func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cookieValue := h.cookies.Read(r, token.ActionComment, req.TargetType, req.TargetID)

	result, err := h.comments.Post(r.Context(), req.TargetType, req.TargetID, req.Content, cookieValue)
	if err != nil {
		if engagement.IsValidationError(err) {
			h.metrics.Rejected.WithLabelValues(rejectionReason(err)).Inc()
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.ErrorContext(r.Context(), "comment create failed", "targetType", req.TargetType, "targetId", req.TargetID, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to save comment")
		return
	}

	if result.AlreadyCommented {
		h.metrics.Duplicates.WithLabelValues("comment").Inc()
		respondJSON(w, http.StatusOK, map[string]string{"message": "Already commented"})
		return
	}

	h.metrics.Comments.WithLabelValues(req.TargetType).Inc()
	h.cookies.Write(w, token.ActionComment, req.TargetType, req.TargetID, result.Token)
	respondJSON(w, http.StatusOK, map[string]any{"comment": result.Comment})
}

func rejectionReason(err error) string {
	switch err {
	case engagement.ErrEmptyComment:
		return "empty"
	case engagement.ErrDisallowedContent:
		return "denylist"
	default:
		return "invalid_target"
	}
}

// ListContent returns a handler for GET /api/{endpoint} list routes, served
// through the read cache when possible.
func (h *Handler) ListContent(endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := cache.Key(endpoint, "")
		if data, ok := h.cache.Get(r.Context(), key); ok {
			respondRaw(w, http.StatusOK, data)
			return
		}

		list, err := h.store.GetAll(r.Context(), endpoint, nil)
		if err != nil {
			h.log.ErrorContext(r.Context(), "content list failed", "endpoint", endpoint, "error", err)
			h.metrics.StoreReadErrors.WithLabelValues(endpoint).Inc()
			respondError(w, http.StatusInternalServerError, "Failed to fetch content")
			return
		}

		data, err := json.Marshal(list.Contents)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to fetch content")
			return
		}

		h.cache.Set(r.Context(), key, data)
		respondRaw(w, http.StatusOK, data)
	}
}

// GetContent returns a handler for GET /api/{endpoint}/{id} detail routes.
// Detail responses are served fresh so the likes count reflects the last
// write. queries may be nil; creators pass depth=1 to resolve references.
func (h *Handler) GetContent(endpoint string, queries url.Values) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			respondError(w, http.StatusBadRequest, "Missing content ID")
			return
		}

		raw, err := h.store.Get(r.Context(), endpoint, id, queries)
		if err != nil {
			if cms.IsNotFound(err) {
				respondError(w, http.StatusNotFound, "Content not found")
				return
			}
			h.log.ErrorContext(r.Context(), "content fetch failed", "endpoint", endpoint, "id", id, "error", err)
			h.metrics.StoreReadErrors.WithLabelValues(endpoint).Inc()
			respondError(w, http.StatusInternalServerError, "Failed to fetch content")
			return
		}

		respondRaw(w, http.StatusOK, raw)
	}
}
