package chat_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatbox-platform/chatbox/internal/api"
	"github.com/chatbox-platform/chatbox/internal/chat"
	"github.com/chatbox-platform/chatbox/internal/prompt"
	"github.com/chatbox-platform/chatbox/internal/transcript"
	"github.com/chatbox-platform/chatbox/internal/visits"
)

type fakeCompleter struct {
	reply string
	err   error
}

func (f *fakeCompleter) Complete(_ context.Context, _ []prompt.Message) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newTestRouter(completer chat.Completer) http.Handler {
	store := transcript.NewStore(30)
	tracker := visits.NewTracker()
	svc := chat.NewService(store, tracker, completer)
	chatHandler := chat.NewHandler(svc, "test/model")
	visitHandler := visits.NewHandler(tracker)

	return api.NewRouter(api.RouterConfig{}, api.HandlerSet{
		NewSession: chatHandler.NewSession,
		Chat:       chatHandler.Chat,
		History:    chatHandler.History,
		Health:     chatHandler.Health,
		TrackVisit: visitHandler.TrackVisit,
	})
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func TestRouter_NewSessionThenChatThenHistory(t *testing.T) {
	router := newTestRouter(&fakeCompleter{reply: "hi there"})

	rec, body := doJSON(t, router, "GET", "/api/new_session", "")
	require.Equal(t, http.StatusOK, rec.Code)
	sessionID, _ := body["session_id"].(string)
	require.NotEmpty(t, sessionID)

	rec, body = doJSON(t, router, "POST", "/api/chat",
		`{"session_id":"`+sessionID+`","message":"hello"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hi there", body["reply"])

	rec, body = doJSON(t, router, "GET", "/api/history?session_id="+sessionID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	msgs, ok := body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	first := msgs[0].(map[string]any)
	assert.Equal(t, "You", first["sender"])
	assert.Equal(t, "hello", first["text"])
	second := msgs[1].(map[string]any)
	assert.Equal(t, "AI", second["sender"])
	assert.Equal(t, "hi there", second["text"])
}

func TestRouter_ChatInvalidImageURL(t *testing.T) {
	router := newTestRouter(&fakeCompleter{reply: "unused"})

	rec, body := doJSON(t, router, "POST", "/api/chat",
		`{"session_id":"s1","message":"look","image_urls":["ftp://x/y.png"]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errMsg, _ := body["error"].(string)
	assert.Contains(t, errMsg, "ftp://x/y.png")
}

func TestRouter_ChatProviderFailure(t *testing.T) {
	router := newTestRouter(&fakeCompleter{err: errors.New("model overloaded")})

	rec, body := doJSON(t, router, "POST", "/api/chat",
		`{"session_id":"s1","message":"hello"}`)
	require.Equal(t, http.StatusBadGateway, rec.Code)
	errMsg, _ := body["error"].(string)
	assert.Contains(t, errMsg, "inference error")
	assert.Contains(t, errMsg, "model overloaded")
}

func TestRouter_ChatMissingSessionID(t *testing.T) {
	router := newTestRouter(&fakeCompleter{reply: "unused"})

	rec, _ := doJSON(t, router, "POST", "/api/chat", `{"message":"hello"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_ChatMalformedBody(t *testing.T) {
	router := newTestRouter(&fakeCompleter{reply: "unused"})

	rec, _ := doJSON(t, router, "POST", "/api/chat", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_HistoryUnknownSession(t *testing.T) {
	router := newTestRouter(&fakeCompleter{})

	rec, body := doJSON(t, router, "GET", "/api/history?session_id=missing", "")
	require.Equal(t, http.StatusOK, rec.Code)
	msgs, ok := body["messages"].([]any)
	require.True(t, ok)
	assert.Empty(t, msgs)
}

func TestRouter_HistoryRequiresSessionID(t *testing.T) {
	router := newTestRouter(&fakeCompleter{})

	rec, _ := doJSON(t, router, "GET", "/api/history", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_TrackVisit(t *testing.T) {
	router := newTestRouter(&fakeCompleter{})

	rec, body := doJSON(t, router, "POST", "/api/track_visit",
		`{"visitor_id":"v1","page":"/home"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "v1", body["visitor_id"])

	rec, body = doJSON(t, router, "POST", "/api/track_visit",
		`{"visitor_id":"v1","page":"/about"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	pages, ok := body["pages"].([]any)
	require.True(t, ok)
	assert.Equal(t, []any{"/home", "/about"}, pages)
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(&fakeCompleter{})

	rec, body := doJSON(t, router, "GET", "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "test/model", body["model"])
}
