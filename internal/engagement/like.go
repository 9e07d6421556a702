// Package engagement implements the anonymous like and comment write paths:
// duplicate suppression via signed cookie tokens, profanity filtering, and
// persistence through the external content store.
package engagement

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/KomatechBot/geien-fes2/internal/token"
)

var (
	// ErrMissingTarget means contentId or endpoint was empty.
	ErrMissingTarget = errors.New("contentId and endpoint are required")
	// ErrInvalidTarget means the target type is not commentable.
	ErrInvalidTarget = errors.New("targetType must be exhibitions or workshops")
	// ErrEmptyComment means the submitted comment had no content.
	ErrEmptyComment = errors.New("comment must not be empty")
	// ErrDisallowedContent means the comment matched the denylist.
	ErrDisallowedContent = errors.New("comment contains a disallowed word")
)

// IsValidationError reports whether err is a client-side input error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingTarget) ||
		errors.Is(err, ErrInvalidTarget) ||
		errors.Is(err, ErrEmptyComment) ||
		errors.Is(err, ErrDisallowedContent)
}

// ContentStore is the slice of the content store API the like path needs.
type ContentStore interface {
	Get(ctx context.Context, endpoint, id string, queries url.Values) (json.RawMessage, error)
	Update(ctx context.Context, endpoint, id string, content any) error
}

// LikeResult is the outcome of a like attempt.
type LikeResult struct {
	// AlreadyLiked is set when a valid token suppressed the increment. The
	// stored count is not re-read in that case.
	AlreadyLiked bool
	Likes        int
	// Token is the fresh duplicate-prevention token, empty when AlreadyLiked.
	Token string
}

// LikeService increments the likes counter of a content record.
//
// The increment is read-then-write: the store exposes no atomic increment or
// versioned update, so two racing requests that both pass the duplicate check
// can lose one increment. Best-effort by contract; the counter is decorative.
type LikeService struct {
	store ContentStore
	codec *token.Codec
	log   *slog.Logger
	now   func() time.Time
}

// NewLikeService creates a like service
func NewLikeService(store ContentStore, codec *token.Codec, log *slog.Logger) *LikeService {
	return &LikeService{
		store: store,
		codec: codec,
		log:   log.With("service", "like"),
		now:   time.Now,
	}
}

// Like performs one like on (endpoint, contentID). cookieValue is the raw
// duplicate-prevention token from the request, "" when absent. A forged or
// corrupt token verifies false and is treated like no token at all: it can
// never grant "already liked", only fail to suppress a repeat.
func (s *LikeService) Like(ctx context.Context, endpoint, contentID, cookieValue string) (LikeResult, error) {
	if endpoint == "" || contentID == "" {
		return LikeResult{}, ErrMissingTarget
	}

	if cookieValue != "" && s.codec.Verify(cookieValue, endpoint, contentID) {
		return LikeResult{AlreadyLiked: true}, nil
	}

	raw, err := s.store.Get(ctx, endpoint, contentID, nil)
	if err != nil {
		return LikeResult{}, fmt.Errorf("read %s/%s: %w", endpoint, contentID, err)
	}

	var record struct {
		Likes int `json:"likes"`
	}
	if err := json.Unmarshal(raw, &record); err != nil {
		return LikeResult{}, fmt.Errorf("decode %s/%s: %w", endpoint, contentID, err)
	}

	likes := record.Likes + 1
	if err := s.store.Update(ctx, endpoint, contentID, map[string]int{"likes": likes}); err != nil {
		return LikeResult{}, fmt.Errorf("update %s/%s: %w", endpoint, contentID, err)
	}

	s.log.InfoContext(ctx, "like recorded", "endpoint", endpoint, "contentId", contentID, "likes", likes)

	return LikeResult{
		Likes: likes,
		Token: s.codec.Issue(endpoint, contentID, s.now()),
	}, nil
}
