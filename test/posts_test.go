//go:build integration_test || all_tests

package test

import (
	"context"
	"fmt"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type postResponse struct {
	ID   int64 `json:"id"`
	User struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
	} `json:"user"`
	Text     string  `json:"text"`
	Likes    []int64 `json:"likes"`
	Comments []struct {
		Text string `json:"text"`
	} `json:"comments"`
}

type notificationResponse struct {
	Type   string `json:"type"`
	PostID int64  `json:"postId"`
	Read   bool   `json:"read"`
	Sender struct {
		Username string `json:"username"`
	} `json:"sender"`
	CommentText string `json:"commentText"`
}

func (s *IntegrationTestSuite) TestPosts_LikeCommentNotify() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	author := s.registerUser(ctx)
	fan := s.registerUser(ctx)

	var post postResponse
	s.doJSON(ctx, http.MethodPost, "/posts", author.Token, map[string]string{
		"text": "<b>Treino</b> de perna feito",
	}, http.StatusCreated, &post)
	assert.Equal(t, "Treino de perna feito", post.Text)
	assert.Equal(t, author.Username, post.User.Username)

	s.requireError(ctx, http.MethodPost, "/posts/999999/like", fan.Token, nil, http.StatusNotFound, "not_found")

	likePath := fmt.Sprintf("/posts/%d/like", post.ID)
	s.doJSON(ctx, http.MethodPost, likePath, fan.Token, nil, http.StatusOK, nil)
	// liking twice keeps one like and one notification
	s.doJSON(ctx, http.MethodPost, likePath, fan.Token, nil, http.StatusOK, nil)
	s.doJSON(ctx, http.MethodPost, fmt.Sprintf("/posts/%d/comments", post.ID), fan.Token, map[string]string{
		"text": "<em>monstro</em>",
	}, http.StatusCreated, nil)
	// own actions do not notify
	s.doJSON(ctx, http.MethodPost, likePath, author.Token, nil, http.StatusOK, nil)

	var feed []postResponse
	s.doJSON(ctx, http.MethodGet, "/posts?limit=1", fan.Token, nil, http.StatusOK, &feed)
	require.Len(t, feed, 1)
	assert.Equal(t, post.ID, feed[0].ID)
	assert.ElementsMatch(t, []int64{fan.ID, author.ID}, feed[0].Likes)
	require.Len(t, feed[0].Comments, 1)
	assert.Equal(t, "<em>monstro</em>", feed[0].Comments[0].Text)

	var notifications []notificationResponse
	s.doJSON(ctx, http.MethodGet, "/notifications", author.Token, nil, http.StatusOK, &notifications)
	require.Len(t, notifications, 2)
	assert.Equal(t, "comment", notifications[0].Type)
	assert.Equal(t, "<em>monstro</em>", notifications[0].CommentText)
	assert.Equal(t, "like", notifications[1].Type)
	assert.Equal(t, fan.Username, notifications[1].Sender.Username)
	assert.False(t, notifications[1].Read)

	s.doJSON(ctx, http.MethodPost, "/notifications/read-all", author.Token, nil, http.StatusOK, nil)
	s.doJSON(ctx, http.MethodGet, "/notifications", author.Token, nil, http.StatusOK, &notifications)
	require.Len(t, notifications, 2)
	assert.True(t, notifications[0].Read)
	assert.True(t, notifications[1].Read)

	s.doJSON(ctx, http.MethodDelete, likePath, fan.Token, nil, http.StatusOK, nil)
	s.doJSON(ctx, http.MethodGet, "/posts?limit=1", fan.Token, nil, http.StatusOK, &feed)
	assert.Equal(t, []int64{author.ID}, feed[0].Likes)

	var fanNotifications []notificationResponse
	s.doJSON(ctx, http.MethodGet, "/notifications", fan.Token, nil, http.StatusOK, &fanNotifications)
	assert.Empty(t, fanNotifications)
}

func (s *IntegrationTestSuite) TestPushSubscribe() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	user := s.registerUser(ctx)
	s.doJSON(ctx, http.MethodPost, "/push/subscribe", user.Token, map[string]any{
		"subscription": map[string]any{
			"endpoint": "https://push.example.com/send/abc",
			"keys": map[string]string{
				"p256dh": "BPub",
				"auth":   "secret",
			},
		},
	}, http.StatusCreated, nil)
	s.requireError(ctx, http.MethodPost, "/push/subscribe", user.Token, map[string]any{}, http.StatusBadRequest, "validation")
}
