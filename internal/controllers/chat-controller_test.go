package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatEndpoint(t *testing.T) {
	router, _ := setupTestAPI(t)

	w := doJSON(t, router, http.MethodPost, "/api/chat/", map[string]string{
		"message": "What pizzas do you have?",
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Contains(t, body["response"], "menu")
	// A session id is minted when the request does not carry one
	assert.NotEmpty(t, body["session_id"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestChatEndpointKeepsSession(t *testing.T) {
	router, _ := setupTestAPI(t)

	first := doJSON(t, router, http.MethodPost, "/api/chat/", map[string]string{"message": "Hello"})
	require.Equal(t, http.StatusOK, first.Code)
	sessionID := decodeBody(t, first)["session_id"].(string)

	second := doJSON(t, router, http.MethodPost, "/api/chat/", map[string]string{
		"message":    "Show me the menu",
		"session_id": sessionID,
	})
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, sessionID, decodeBody(t, second)["session_id"])

	w := doJSON(t, router, http.MethodGet, "/api/chat/history/"+sessionID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		SessionID string `json:"session_id"`
		History   []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"history"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, sessionID, resp.SessionID)
	require.Len(t, resp.History, 4)
	assert.Equal(t, "user", resp.History[0].Role)
	assert.Equal(t, "Hello", resp.History[0].Content)
	assert.Equal(t, "assistant", resp.History[1].Role)
}

func TestChatEndpointEmptyMessage(t *testing.T) {
	router, _ := setupTestAPI(t)

	for _, message := range []string{"", "   "} {
		w := doJSON(t, router, http.MethodPost, "/api/chat/", map[string]string{"message": message})
		require.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "VALIDATION_ERROR", body["code"])
		assert.Equal(t, "Message is required", body["error"])
	}
}

func TestChatHistoryEndpointUnknownSession(t *testing.T) {
	router, _ := setupTestAPI(t)

	w := doJSON(t, router, http.MethodGet, "/api/chat/history/no-such-session", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		History []interface{} `json:"history"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.History)
}

func TestClearChatHistoryEndpoint(t *testing.T) {
	router, _ := setupTestAPI(t)

	posted := doJSON(t, router, http.MethodPost, "/api/chat/", map[string]string{"message": "Hello"})
	require.Equal(t, http.StatusOK, posted.Code)
	sessionID := decodeBody(t, posted)["session_id"].(string)

	w := doJSON(t, router, http.MethodDelete, "/api/chat/clear/"+sessionID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Chat history cleared successfully", decodeBody(t, w)["message"])

	history := doJSON(t, router, http.MethodGet, "/api/chat/history/"+sessionID, nil)
	var resp struct {
		History []interface{} `json:"history"`
	}
	require.NoError(t, json.Unmarshal(history.Body.Bytes(), &resp))
	assert.Empty(t, resp.History)
}

func TestChatStatsEndpoint(t *testing.T) {
	router, _ := setupTestAPI(t)

	doJSON(t, router, http.MethodPost, "/api/chat/", map[string]string{"message": "Hello", "session_id": "s1"})
	doJSON(t, router, http.MethodPost, "/api/chat/", map[string]string{"message": "Hi", "session_id": "s2"})

	w := doJSON(t, router, http.MethodGet, "/api/chat/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Stats struct {
			ActiveSessions int `json:"active_sessions"`
			TotalMessages  int `json:"total_messages"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Stats.ActiveSessions)
	assert.Equal(t, 4, resp.Stats.TotalMessages)
}
