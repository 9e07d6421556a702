package models

// Comment is an anonymous comment record stored in the CMS. Timestamps are
// assigned by the store on creation.
type Comment struct {
	ID          string `json:"id"`
	TargetType  string `json:"targetType"`
	TargetID    string `json:"targetId"`
	Content     string `json:"content"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
	PublishedAt string `json:"publishedAt"`
	RevisedAt   string `json:"revisedAt"`
}

// LikeRequest is the request body for POST /api/like.
type LikeRequest struct {
	ContentID string `json:"contentId"`
	Endpoint  string `json:"endpoint"`
}

// CreateCommentRequest is the request body for POST /api/comments.
type CreateCommentRequest struct {
	TargetType string `json:"targetType"`
	TargetID   string `json:"targetId"`
	Content    string `json:"content"`
}
