package posts

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/2beens/gymrats/internal/apperrors"
)

const (
	MaxTextLength = 500
	// Retention is how long a post stays in the feed.
	Retention        = 30 * 24 * time.Hour
	DefaultFeedLimit = 20
	MaxFeedLimit     = 100
)

var (
	// posts are plain text
	postPolicy = bluemonday.StrictPolicy()
	// comments keep basic inline formatting
	commentPolicy = bluemonday.NewPolicy().AllowElements("b", "i", "em", "strong", "u")
)

type Author struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture"`
}

type Comment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"postId"`
	Author    Author    `json:"user"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

type Post struct {
	ID        int64     `json:"id"`
	Author    Author    `json:"user"`
	Text      string    `json:"text"`
	Likes     []int64   `json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`
}

func sanitizePostText(op, raw string) (string, error) {
	return checkText(op, "post", postPolicy.Sanitize(raw))
}

func sanitizeCommentText(op, raw string) (string, error) {
	return checkText(op, "comment", commentPolicy.Sanitize(raw))
}

func checkText(op, what, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", apperrors.Validation(op, what+" text is required")
	}
	if utf8.RuneCountInString(text) > MaxTextLength {
		return "", apperrors.Validation(op, fmt.Sprintf("%s text must be at most %d characters", what, MaxTextLength))
	}
	return text, nil
}
