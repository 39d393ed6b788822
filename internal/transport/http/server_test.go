package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Reon1917/AU-GURU/internal/core"
	"github.com/Reon1917/AU-GURU/internal/service/chat"
)

type stubService struct {
	answer chat.Answer
	askErr error
	bundle core.Bundle
	known  map[string]bool
	stats  core.SessionStats
}

func (s *stubService) Ask(ctx context.Context, sessionID, query string) (chat.Answer, error) {
	if s.askErr != nil {
		return chat.Answer{}, s.askErr
	}
	answer := s.answer
	answer.SessionID = sessionID
	return answer, nil
}

func (s *stubService) ContextualKnowledge(ctx context.Context, query string) core.Bundle {
	return s.bundle
}

func (s *stubService) Reset(sessionID string) error {
	if !s.known[sessionID] {
		return core.ErrSessionNotFound
	}
	return nil
}

func (s *stubService) Stats() core.SessionStats {
	return s.stats
}

func newTestServer(service ChatService) *Server {
	return NewServer(context.Background(), ":0", service, nil)
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)
	return rec
}

func TestHandleChat(t *testing.T) {
	service := &stubService{
		answer: chat.Answer{
			Reply:         "Tuition starts at 85,000 THB per year.",
			Categories:    []core.Category{core.CategoryTuitions},
			TokenEstimate: 120,
		},
	}
	srv := newTestServer(service)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/chat", map[string]string{
		"session_id": "sess-1",
		"message":    "How much is tuition?",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Code int         `json:"code"`
		Data chat.Answer `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Code)
	assert.Equal(t, "sess-1", resp.Data.SessionID)
	assert.Equal(t, []core.Category{core.CategoryTuitions}, resp.Data.Categories)
}

func TestHandleChat_MintsSessionID(t *testing.T) {
	srv := newTestServer(&stubService{answer: chat.Answer{Reply: "hi"}})

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/chat", map[string]string{
		"message": "hello",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data chat.Answer `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.SessionID, "server should mint a session id when none is supplied")
}

func TestHandleChat_MissingMessage(t *testing.T) {
	srv := newTestServer(&stubService{})

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/chat", map[string]string{
		"session_id": "sess-1",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleReset(t *testing.T) {
	srv := newTestServer(&stubService{known: map[string]bool{"sess-1": true}})

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/sessions/sess-1/reset", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/v1/sessions/unknown/reset", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleStats(t *testing.T) {
	srv := newTestServer(&stubService{stats: core.SessionStats{ActiveSessions: 2, TotalMessages: 9}})

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/sessions/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data core.SessionStats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Data.ActiveSessions)
	assert.Equal(t, 9, resp.Data.TotalMessages)
}

func TestHandleContext(t *testing.T) {
	srv := newTestServer(&stubService{bundle: core.Bundle{
		Prompt:        "context",
		Categories:    []core.Category{core.CategoryContacts, core.CategoryFaculties},
		TokenEstimate: 2,
	}})

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/knowledge/context?q=asdkjasd", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data core.Bundle `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Categories, 2)

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/knowledge/context", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(&stubService{})

	rec := doJSON(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestTranscriptsDisabled(t *testing.T) {
	srv := newTestServer(&stubService{})

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/transcripts", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
