package notifications

import (
	"time"
)

type Type string

const (
	TypeLike    Type = "like"
	TypeComment Type = "comment"
)

const (
	// ListLimit is how many of the newest notifications a user sees.
	ListLimit = 30
	// Retention is how long a notification stays visible.
	Retention       = 7 * 24 * time.Hour
	DefaultCacheTTL = 2 * time.Minute

	maxPreviewLength = 100
)

type Sender struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture"`
}

type Notification struct {
	ID          int64     `json:"id"`
	RecipientID int64     `json:"recipientId"`
	Sender      Sender    `json:"sender"`
	PostID      int64     `json:"postId"`
	Type        Type      `json:"type"`
	CommentText string    `json:"commentText,omitempty"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Event is something a user did to a post owned by someone else.
type Event struct {
	RecipientID int64
	SenderID    int64
	PostID      int64
	Type        Type
	CommentText string
}
