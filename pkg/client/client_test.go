package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]interface{}{"user": map[string]interface{}{"id": 1}})
	}))
	defer server.Close()

	c := New(Config{BaseURL: server.URL})
	c.Tokens().SetToken("abc123")

	_, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc123", gotAuth)
}

func TestNoBearerWithoutToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]interface{}{"badges": []interface{}{}})
	}))
	defer server.Close()

	c := New(Config{BaseURL: server.URL})
	_, err := c.ListBadges(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestUnauthorizedClearsTokenAndNotifies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid or expired token"})
	}))
	defer server.Close()

	notified := false
	c := New(Config{
		BaseURL:        server.URL,
		OnUnauthorized: func() { notified = true },
	})
	c.Tokens().SetToken("stale-token")

	_, err := c.Me(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, c.Tokens().Token(), "token must be cleared on a 401")
	assert.True(t, notified)
}

func TestLoginStoresToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "ada@example.com", body["email"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"token":      "fresh-token",
			"expires_in": 86400,
			"user":       map[string]interface{}{"id": 7, "email": "ada@example.com"},
		})
	}))
	defer server.Close()

	c := New(Config{BaseURL: server.URL})
	resp, err := c.Login(context.Background(), "ada@example.com", "secret1")
	require.NoError(t, err)

	assert.Equal(t, "fresh-token", resp.Token)
	assert.Equal(t, uint(7), resp.User.ID)
	assert.Equal(t, "fresh-token", c.Tokens().Token())
}

func TestLogoutClearsToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"message": "logged out"})
	}))
	defer server.Close()

	c := New(Config{BaseURL: server.URL})
	c.Tokens().SetToken("abc")

	require.NoError(t, c.Logout(context.Background()))
	assert.Empty(t, c.Tokens().Token())
}

func TestAPIErrorWithFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": "validation failed",
			"fields": []map[string]string{
				{"field": "password", "message": "password must be at least 6 characters"},
			},
		})
	}))
	defer server.Close()

	c := New(Config{BaseURL: server.URL})
	_, err := c.Register(context.Background(), RegisterRequest{Email: "a@b.com", Password: "x"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "validation failed", apiErr.Message)
	require.Len(t, apiErr.Fields, 1)
	assert.Equal(t, "password", apiErr.Fields[0].Field)
	assert.Contains(t, apiErr.Error(), "password must be at least 6 characters")
}

func TestConflictError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "email is already registered"})
	}))
	defer server.Close()

	c := New(Config{BaseURL: server.URL})
	_, err := c.Register(context.Background(), RegisterRequest{Email: "a@b.com", Password: "secret1"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
}

func TestOperationPaths(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path + pathQuery(r)
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	c := New(Config{BaseURL: server.URL})
	ctx := context.Background()

	cases := []struct {
		call   func() error
		method string
		path   string
	}{
		{func() error { _, err := c.GetUser(ctx, 3); return err }, http.MethodGet, "/api/users/3"},
		{func() error { return c.JoinChapter(ctx, 3, 9) }, http.MethodPost, "/api/users/3/chapter"},
		{func() error { return c.LeaveChapter(ctx, 3) }, http.MethodDelete, "/api/users/3/chapter"},
		{func() error { _, err := c.PendingChapters(ctx); return err }, http.MethodGet, "/api/chapters/pending"},
		{func() error { return c.ApproveChapter(ctx, 4) }, http.MethodPost, "/api/chapters/4/approve"},
		{func() error { _, err := c.RegisterForEvent(ctx, 8); return err }, http.MethodPost, "/api/events/8/register"},
		{func() error { return c.UnregisterFromEvent(ctx, 8) }, http.MethodDelete, "/api/events/8/register"},
		{func() error { return c.MarkAttendance(ctx, 8, 3) }, http.MethodPost, "/api/events/8/attendance"},
		{func() error { _, err := c.ListEvents(ctx, EventFilter{Upcoming: true}); return err }, http.MethodGet, "/api/events?upcoming=true"},
		{func() error { _, err := c.BadgeEligibility(ctx, 3); return err }, http.MethodGet, "/api/badges/eligibility/3"},
		{func() error { _, err := c.AutoAwardBadges(ctx); return err }, http.MethodPost, "/api/badges/auto-award"},
	}
	for _, tc := range cases {
		require.NoError(t, tc.call(), tc.path)
		assert.Equal(t, tc.method, gotMethod, tc.path)
		assert.Equal(t, tc.path, gotPath)
	}
}

func pathQuery(r *http.Request) string {
	if r.URL.RawQuery == "" {
		return ""
	}
	return "?" + r.URL.RawQuery
}
