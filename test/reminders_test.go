//go:build integration_test || all_tests

package test

import (
	"context"
	"fmt"
	"net/http"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reminderResponse struct {
	ID       int64    `json:"id"`
	Type     string   `json:"type"`
	Message  string   `json:"message"`
	Time     string   `json:"time"`
	Days     []string `json:"days"`
	IsActive bool     `json:"isActive"`
}

func (s *IntegrationTestSuite) TestReminders_CRUD() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	user := s.registerUser(ctx)
	other := s.registerUser(ctx)

	var empty []reminderResponse
	s.doJSON(ctx, http.MethodGet, "/reminders", user.Token, nil, http.StatusOK, &empty)
	assert.Empty(t, empty)

	s.requireError(ctx, http.MethodPost, "/reminders", user.Token, map[string]any{
		"type":    "water",
		"message": "drink",
		"time":    "25:00",
		"days":    []string{"monday"},
	}, http.StatusBadRequest, "validation")

	message := gofakeit.Sentence(3)
	var created reminderResponse
	s.doJSON(ctx, http.MethodPost, "/reminders", user.Token, map[string]any{
		"type":    "water",
		"message": message,
		"time":    "08:30",
		"days":    []string{"friday", "Monday", "monday"},
	}, http.StatusCreated, &created)
	require.NotZero(t, created.ID)
	assert.Equal(t, message, created.Message)
	assert.Equal(t, []string{"Monday", "Friday"}, created.Days)
	assert.True(t, created.IsActive)

	path := fmt.Sprintf("/reminders/%d", created.ID)

	var updated reminderResponse
	s.doJSON(ctx, http.MethodPut, path, user.Token, map[string]any{
		"type":     "meal",
		"message":  "lunch",
		"time":     "12:00",
		"days":     []string{"Wednesday"},
		"isActive": false,
	}, http.StatusOK, &updated)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "meal", updated.Type)
	assert.False(t, updated.IsActive)

	// other users can neither see nor touch it
	var otherList []reminderResponse
	s.doJSON(ctx, http.MethodGet, "/reminders", other.Token, nil, http.StatusOK, &otherList)
	assert.Empty(t, otherList)
	s.requireError(ctx, http.MethodDelete, path, other.Token, nil, http.StatusNotFound, "not_found")

	s.doJSON(ctx, http.MethodDelete, path, user.Token, nil, http.StatusOK, nil)
	s.requireError(ctx, http.MethodDelete, path, user.Token, nil, http.StatusNotFound, "not_found")
}
