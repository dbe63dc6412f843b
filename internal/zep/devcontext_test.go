package zep

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func graphCapture(t *testing.T) (*httptest.Server, *GraphAddRequest) {
	t.Helper()
	var got GraphAddRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/graph", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)
	return server, &got
}

func graphPayload(t *testing.T, req *GraphAddRequest) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(req.Data), &payload))
	return payload
}

func TestContextManagerAddDecision(t *testing.T) {
	server, got := graphCapture(t)
	manager := NewContextManager(NewClient(server.URL, "k"), "proj", zap.NewNop().Sugar())

	err := manager.AddDecision("architecture", "Use Provider for state management", map[string]any{"reason": "simplicity"})
	require.NoError(t, err)

	assert.Equal(t, "proj", got.UserID)
	assert.Equal(t, "json", got.Type)

	payload := graphPayload(t, got)
	assert.Equal(t, "development_decision", payload["type"])
	assert.Equal(t, "architecture", payload["decision_type"])
	assert.Equal(t, "Use Provider for state management", payload["description"])
	assert.NotEmpty(t, payload["timestamp"])
	assert.Equal(t, map[string]any{"reason": "simplicity"}, payload["context"])
}

func TestContextManagerTrackCodeChange(t *testing.T) {
	server, got := graphCapture(t)
	manager := NewContextManager(NewClient(server.URL, "k"), "proj", zap.NewNop().Sugar())

	err := manager.TrackCodeChange("lib/calendar_provider.dart", "feature", "Real-time event sync", "StreamProvider<List<CalendarEvent>>")
	require.NoError(t, err)

	payload := graphPayload(t, got)
	assert.Equal(t, "code_change", payload["type"])
	assert.Equal(t, "lib/calendar_provider.dart", payload["file_path"])
	assert.Equal(t, "StreamProvider<List<CalendarEvent>>", payload["code_snippet"])
}

func TestContextManagerAddTodoDefaults(t *testing.T) {
	server, got := graphCapture(t)
	manager := NewContextManager(NewClient(server.URL, "k"), "proj", zap.NewNop().Sugar())

	require.NoError(t, manager.AddTodo("Implement offline support", "", ""))

	payload := graphPayload(t, got)
	assert.Equal(t, "todo", payload["type"])
	assert.Equal(t, "medium", payload["priority"])
	assert.Equal(t, "general", payload["category"])
	assert.Equal(t, "pending", payload["status"])
}

func TestContextManagerAddErrorContext(t *testing.T) {
	server, got := graphCapture(t)
	manager := NewContextManager(NewClient(server.URL, "k"), "proj", zap.NewNop().Sugar())

	err := manager.AddErrorContext("permission-denied", "lib/calendar_service.dart", "", "Updated Firestore security rules")
	require.NoError(t, err)

	payload := graphPayload(t, got)
	assert.Equal(t, "error_context", payload["type"])
	assert.Equal(t, "permission-denied", payload["error_message"])
	assert.Equal(t, "Updated Firestore security rules", payload["resolution"])
	_, hasStack := payload["stack_trace"]
	assert.False(t, hasStack)
}

func TestContextManagerEnsureProjectUser(t *testing.T) {
	created := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			w.WriteHeader(http.StatusNotFound)
		case r.Method == http.MethodPost && r.URL.Path == "/users":
			created = true
			var user User
			require.NoError(t, json.NewDecoder(r.Body).Decode(&user))
			assert.Equal(t, "proj", user.UserID)
			assert.Equal(t, "Flutter Firebase Application", user.Metadata["project_type"])
			err := json.NewEncoder(w).Encode(user)
			require.NoError(t, err)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	manager := NewContextManager(NewClient(server.URL, "k"), "proj", zap.NewNop().Sugar())
	user, err := manager.EnsureProjectUser("Teacher dashboard")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "proj", user.UserID)
}

func TestContextManagerEnsureProjectUserExisting(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		err := json.NewEncoder(w).Encode(User{UserID: "proj"})
		require.NoError(t, err)
	}))
	defer server.Close()

	manager := NewContextManager(NewClient(server.URL, "k"), "proj", zap.NewNop().Sugar())
	user, err := manager.EnsureProjectUser("ignored")
	require.NoError(t, err)
	assert.Equal(t, "proj", user.UserID)
}

func TestContextManagerStartSession(t *testing.T) {
	var req CreateSessionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sessions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	manager := NewContextManager(NewClient(server.URL, "k"), "proj", zap.NewNop().Sugar())
	sessionID, err := manager.StartSession("development")
	require.NoError(t, err)
	assert.NotEmpty(t, sessionID)
	assert.Equal(t, sessionID, req.SessionID)
	assert.Equal(t, "proj", req.UserID)
	assert.Equal(t, "development", req.Metadata["environment"])
}

func TestContextManagerSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req GraphSearchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		// the default limit kicks in when the caller passes zero
		assert.Equal(t, 10, req.Limit)
		err := json.NewEncoder(w).Encode(GraphSearchResults{Edges: []GraphEdge{{Fact: "fact"}}})
		require.NoError(t, err)
	}))
	defer server.Close()

	manager := NewContextManager(NewClient(server.URL, "k"), "proj", zap.NewNop().Sugar())
	edges, err := manager.Search("anything", 0)
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, "fact", edges[0].Fact)
}
