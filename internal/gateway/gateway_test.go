package gateway

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/smarttodo/smarttodo/internal/api"
	"github.com/smarttodo/smarttodo/internal/auth"
	"github.com/smarttodo/smarttodo/internal/mirror"
)

// testEnv wires the gateway services against a mirror in a temp dir and a
// backend URL. Pass a nil handler for a backend that refuses connections.
type testEnv struct {
	store    *mirror.Store
	session  *Session
	tasks    *TaskService
	goals    *GoalService
	cats     *CategoryService
	ai       *AIService
	users    *UserService
	creds    *auth.Store
	client   *api.Client
	baseTime time.Time
	calls    int
}

// now returns a strictly increasing clock so wall-clock-derived local IDs
// never collide within a test.
func (e *testEnv) now() time.Time {
	e.calls++
	return e.baseTime.Add(time.Duration(e.calls) * time.Millisecond)
}

func setupEnv(t *testing.T, handler http.Handler) *testEnv {
	t.Helper()

	store, err := mirror.Open(filepath.Join(t.TempDir(), "mirror.db"))
	if err != nil {
		t.Fatalf("open mirror: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	server := httptest.NewServer(handler)
	if handler == nil {
		server.Close() // unreachable backend
	} else {
		t.Cleanup(server.Close)
	}

	session, err := NewSession(store)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	env := &testEnv{
		store:    store,
		session:  session,
		client:   api.New(server.URL, "test-token"),
		creds:    auth.NewStore(filepath.Join(t.TempDir(), "credentials.json")),
		baseTime: time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
	}
	env.tasks = NewTaskService(env.client, store, session, env.now)
	env.goals = NewGoalService(env.client, store, session, env.now)
	env.cats = NewCategoryService(env.client, store, session)
	env.ai = NewAIService(env.client, session)
	env.users = NewUserService(env.client, env.creds, session, env.now)
	return env
}
