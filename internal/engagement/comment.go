package engagement

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/KomatechBot/geien-fes2/internal/cms"
	"github.com/KomatechBot/geien-fes2/internal/denylist"
	"github.com/KomatechBot/geien-fes2/internal/models"
	"github.com/KomatechBot/geien-fes2/internal/token"
	"github.com/microcosm-cc/bluemonday"
)

// commentsEndpoint is the store endpoint comment records live under.
const commentsEndpoint = "comments"

// CommentStore is the slice of the content store API the comment path needs.
type CommentStore interface {
	GetAll(ctx context.Context, endpoint string, queries url.Values) (cms.ListResult, error)
	Create(ctx context.Context, endpoint string, content any) (json.RawMessage, error)
}

// CommentResult is the outcome of a comment submission.
type CommentResult struct {
	AlreadyCommented bool
	Comment          models.Comment
	// Token is the fresh duplicate-prevention token, empty when
	// AlreadyCommented.
	Token string
}

// CommentService persists anonymous comments after filtering and sanitizing
// them, and lists comments per target.
type CommentService struct {
	store     CommentStore
	codec     *token.Codec
	filter    *denylist.Filter
	sanitizer *bluemonday.Policy
	log       *slog.Logger
	now       func() time.Time
}

// NewCommentService creates a comment service
func NewCommentService(store CommentStore, codec *token.Codec, filter *denylist.Filter, log *slog.Logger) *CommentService {
	return &CommentService{
		store:     store,
		codec:     codec,
		filter:    filter,
		sanitizer: bluemonday.StrictPolicy(),
		log:       log.With("service", "comment"),
		now:       time.Now,
	}
}

// Post submits one comment on (targetType, targetID). Validation and the
// denylist run before the duplicate check so a rejected submission never
// consumes or mints a token.
func (s *CommentService) Post(ctx context.Context, targetType, targetID, content, cookieValue string) (CommentResult, error) {
	if targetID == "" {
		return CommentResult{}, ErrMissingTarget
	}
	if !models.ValidTarget(targetType) {
		return CommentResult{}, ErrInvalidTarget
	}
	if strings.TrimSpace(content) == "" {
		return CommentResult{}, ErrEmptyComment
	}
	if s.filter.Contains(content) {
		return CommentResult{}, ErrDisallowedContent
	}

	if cookieValue != "" && s.codec.Verify(cookieValue, targetType, targetID) {
		return CommentResult{AlreadyCommented: true}, nil
	}

	sanitized := strings.TrimSpace(s.sanitizer.Sanitize(content))
	if sanitized == "" {
		// The whole comment was markup.
		return CommentResult{}, ErrEmptyComment
	}

	raw, err := s.store.Create(ctx, commentsEndpoint, map[string]string{
		"targetType": targetType,
		"targetId":   targetID,
		"content":    sanitized,
	})
	if err != nil {
		return CommentResult{}, fmt.Errorf("create comment on %s/%s: %w", targetType, targetID, err)
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &created); err != nil || created.ID == "" {
		return CommentResult{}, fmt.Errorf("malformed create response for %s/%s: %w", targetType, targetID, err)
	}

	now := s.now().UTC().Format(time.RFC3339)
	comment := models.Comment{
		ID:          created.ID,
		TargetType:  targetType,
		TargetID:    targetID,
		Content:     sanitized,
		CreatedAt:   now,
		UpdatedAt:   now,
		PublishedAt: now,
		RevisedAt:   now,
	}

	s.log.InfoContext(ctx, "comment created", "targetType", targetType, "targetId", targetID, "id", created.ID)

	return CommentResult{
		Comment: comment,
		Token:   s.codec.Issue(targetType, targetID, s.now()),
	}, nil
}

// List returns the comments for (targetType, targetID), newest first. Errors
// (including malformed store responses) are returned to the caller; the HTTP
// layer decides to degrade to an empty list.
func (s *CommentService) List(ctx context.Context, targetType, targetID string) ([]models.Comment, error) {
	if targetID == "" {
		return nil, ErrMissingTarget
	}
	if !models.ValidTarget(targetType) {
		return nil, ErrInvalidTarget
	}

	queries := url.Values{}
	queries.Set("filters", fmt.Sprintf("targetType[equals]%s[and]targetId[equals]%s", targetType, targetID))
	queries.Set("orders", "-createdAt")

	list, err := s.store.GetAll(ctx, commentsEndpoint, queries)
	if err != nil {
		return nil, fmt.Errorf("list comments for %s/%s: %w", targetType, targetID, err)
	}

	comments := make([]models.Comment, 0, len(list.Contents))
	for _, raw := range list.Contents {
		var c models.Comment
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("malformed comment record for %s/%s: %w", targetType, targetID, err)
		}
		comments = append(comments, c)
	}
	return comments, nil
}
