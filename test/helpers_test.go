//go:build integration_test || all_tests

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
)

type testUser struct {
	ID       int64
	Username string
	Email    string
	Password string
	Token    string
}

type errorResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// do sends a request as the test agent and returns the status and raw body.
func (s *IntegrationTestSuite) do(ctx context.Context, method, path, token string, body any) (int, []byte) {
	t := s.T()

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reqBody)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, respBytes
}

func (s *IntegrationTestSuite) doJSON(ctx context.Context, method, path, token string, body any, expectedStatus int, out any) {
	t := s.T()
	status, respBytes := s.do(ctx, method, path, token, body)
	require.Equal(t, expectedStatus, status, string(respBytes))
	if out != nil {
		require.NoError(t, json.Unmarshal(respBytes, out), string(respBytes))
	}
}

func (s *IntegrationTestSuite) requireError(ctx context.Context, method, path, token string, body any, expectedStatus int, expectedType string) errorResponse {
	var errResp errorResponse
	s.doJSON(ctx, method, path, token, body, expectedStatus, &errResp)
	require.Equal(s.T(), expectedType, errResp.Type)
	return errResp
}

// registerUser creates a fresh account with random credentials and resolves its id.
func (s *IntegrationTestSuite) registerUser(ctx context.Context) testUser {
	user := testUser{
		Username: strings.ToLower(gofakeit.Username()) + gofakeit.DigitN(4),
		Email:    gofakeit.DigitN(6) + "." + gofakeit.Email(),
		Password: gofakeit.Password(true, true, true, false, false, 12),
	}

	var registerResp struct {
		Token string `json:"token"`
	}
	s.doJSON(ctx, http.MethodPost, "/auth/register", "", map[string]string{
		"username": user.Username,
		"email":    user.Email,
		"password": user.Password,
	}, http.StatusCreated, &registerResp)
	require.NotEmpty(s.T(), registerResp.Token)
	user.Token = registerResp.Token

	var profile struct {
		ID int64 `json:"id"`
	}
	s.doJSON(ctx, http.MethodGet, "/auth/profile", user.Token, nil, http.StatusOK, &profile)
	require.NotZero(s.T(), profile.ID)
	user.ID = profile.ID

	return user
}
