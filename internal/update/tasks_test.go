package update

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/smarttodo/smarttodo/internal/api"
	"github.com/smarttodo/smarttodo/internal/gateway"
	"github.com/smarttodo/smarttodo/internal/mirror"
	"github.com/smarttodo/smarttodo/internal/model"
)

// offlineTaskService wires a TaskService against a mirror in a temp dir
// and a backend that refuses connections.
func offlineTaskService(t *testing.T) *gateway.TaskService {
	t.Helper()

	store, err := mirror.Open(filepath.Join(t.TempDir(), "mirror.db"))
	if err != nil {
		t.Fatalf("open mirror: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	server := httptest.NewServer(nil)
	server.Close()

	session, err := gateway.NewSession(store)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	session.MarkOffline()
	return gateway.NewTaskService(api.New(server.URL, "test-token"), store, session, nil)
}

func TestToggleTaskStampsCompletionTime(t *testing.T) {
	svc := offlineTaskService(t)
	task, err := svc.Create(context.Background(), model.Task{Title: "write report", Priority: model.PriorityNormal})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	m := newTestModel(t)
	m.services.Tasks = svc

	msg := m.toggleTaskCmd(task)()
	saved, ok := msg.(TaskSavedMsg)
	if !ok {
		t.Fatalf("unexpected message %T: %v", msg, msg)
	}
	if !saved.Task.Completed || saved.Task.CompletedAt == nil {
		t.Fatalf("completing must stamp CompletedAt: %+v", saved.Task)
	}

	// Toggling back reopens the task and drops the stamp.
	msg = m.toggleTaskCmd(saved.Task)()
	saved, ok = msg.(TaskSavedMsg)
	if !ok {
		t.Fatalf("unexpected message %T: %v", msg, msg)
	}
	if saved.Task.Completed || saved.Task.CompletedAt != nil {
		t.Fatalf("reopening must clear CompletedAt: %+v", saved.Task)
	}
}
