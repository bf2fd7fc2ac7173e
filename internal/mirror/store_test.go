package mirror

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/smarttodo/smarttodo/internal/model"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "mirror-test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestTaskCollectionRoundTrip(t *testing.T) {
	store := setupStore(t)

	if _, ok, err := store.LoadTasks(); err != nil || ok {
		t.Fatalf("expected empty mirror, ok=%v err=%v", ok, err)
	}

	due := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		{ID: "a", Title: "First", Priority: model.PriorityHigh, Category: "work", DueDate: &due, CreatedAt: due.Add(-time.Hour)},
		{ID: "b", Title: "Second", Priority: model.PriorityNormal, Completed: true, CreatedAt: due.Add(-2 * time.Hour)},
	}
	if err := store.SaveTasks(tasks); err != nil {
		t.Fatalf("save tasks: %v", err)
	}

	got, ok, err := store.LoadTasks()
	if err != nil || !ok {
		t.Fatalf("load tasks: ok=%v err=%v", ok, err)
	}
	if len(got) != 2 || got[0].ID != "a" || got[1].Completed != true {
		t.Fatalf("unexpected tasks: %#v", got)
	}
	if got[0].DueDate == nil || !got[0].DueDate.Equal(due) {
		t.Fatalf("due date not preserved: %#v", got[0].DueDate)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mirror-test.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	tasks := []model.Task{{ID: "a", Title: "First", Priority: model.PriorityNormal}}
	if err := store.SaveTasks(tasks); err != nil {
		t.Fatalf("save tasks: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Re-applying the schema on an existing file must not touch the data.
	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })
	got, ok, err := reopened.LoadTasks()
	if err != nil || !ok || len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("data lost across reopen: ok=%v err=%v got=%#v", ok, err, got)
	}
}

func TestGoalCollectionOverwrite(t *testing.T) {
	store := setupStore(t)

	goals := []model.Goal{{ID: "g1", Name: "Read", TotalTime: 2, Status: model.GoalNotStarted}}
	if err := store.SaveGoals(goals); err != nil {
		t.Fatalf("save goals: %v", err)
	}

	goals[0].TimeSpent = 600
	goals[0].Status = model.GoalInProgress
	if err := store.SaveGoals(goals); err != nil {
		t.Fatalf("re-save goals: %v", err)
	}

	got, ok, err := store.LoadGoals()
	if err != nil || !ok {
		t.Fatalf("load goals: ok=%v err=%v", ok, err)
	}
	if len(got) != 1 || got[0].TimeSpent != 600 || got[0].Status != model.GoalInProgress {
		t.Fatalf("whole-document overwrite failed: %#v", got)
	}
}

func TestOfflineFlagPersistsUntilReset(t *testing.T) {
	store := setupStore(t)

	offline, err := store.OfflineMode()
	if err != nil || offline {
		t.Fatalf("fresh store should be online, got offline=%v err=%v", offline, err)
	}

	if err := store.SetOfflineMode(true); err != nil {
		t.Fatalf("set offline: %v", err)
	}
	offline, err = store.OfflineMode()
	if err != nil || !offline {
		t.Fatalf("expected offline after set, got %v err=%v", offline, err)
	}

	if err := store.ResetSession(); err != nil {
		t.Fatalf("reset session: %v", err)
	}
	offline, err = store.OfflineMode()
	if err != nil || offline {
		t.Fatalf("expected online after reset, got %v err=%v", offline, err)
	}
}
