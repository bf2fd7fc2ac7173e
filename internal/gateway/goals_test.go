package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/smarttodo/smarttodo/internal/model"
)

func TestGoalsSeedEmptyOffline(t *testing.T) {
	env := setupEnv(t, nil)

	goals, err := env.goals.GetAll(context.Background())
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if goals == nil || len(goals) != 0 {
		t.Fatalf("expected empty non-nil collection, got %#v", goals)
	}
}

func TestOfflineGoalCreateFillsDefaults(t *testing.T) {
	env := setupEnv(t, nil)

	goal, err := env.goals.Create(context.Background(), model.Goal{Name: "Learn Go", TotalTime: 2})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if goal.ID == "" || goal.CreatedAt.IsZero() {
		t.Fatalf("identity not synthesized: %#v", goal)
	}
	if goal.Status != model.GoalNotStarted || goal.TimeSpent != 0 || len(goal.Sessions) != 0 {
		t.Fatalf("defaults not applied: %#v", goal)
	}
}

func TestOfflineAddSessionAccumulates(t *testing.T) {
	env := setupEnv(t, nil)
	ctx := context.Background()

	goal, err := env.goals.Create(ctx, model.Goal{Name: "Thesis", TotalTime: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	after, err := env.goals.AddSession(ctx, goal.ID, 1800)
	if err != nil {
		t.Fatalf("add session: %v", err)
	}
	if after.TimeSpent != 1800 || after.Status != model.GoalInProgress {
		t.Fatalf("first session: %#v", after)
	}

	after, err = env.goals.AddSession(ctx, goal.ID, 1800)
	if err != nil {
		t.Fatalf("add second session: %v", err)
	}
	if after.TimeSpent != 3600 || after.Status != model.GoalCompleted {
		t.Fatalf("second session should complete the goal: %#v", after)
	}
	if len(after.Sessions) != 2 {
		t.Fatalf("expected 2 session records, got %d", len(after.Sessions))
	}

	// The mirror holds the accumulated state.
	stored, _, err := env.store.LoadGoals()
	if err != nil || len(stored) != 1 || stored[0].TimeSpent != 3600 {
		t.Fatalf("mirror not updated: %#v err=%v", stored, err)
	}
}

func TestAddSessionPrefersRemote(t *testing.T) {
	env := setupEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/goals/g1/sessions" && r.Method == http.MethodPost {
			_ = json.NewEncoder(w).Encode(model.Goal{ID: "g1", Name: "Remote", TotalTime: 1, TimeSpent: 900, Status: model.GoalInProgress})
			return
		}
		http.NotFound(w, r)
	}))

	goal, err := env.goals.AddSession(context.Background(), "g1", 900)
	if err != nil {
		t.Fatalf("add session: %v", err)
	}
	if goal.TimeSpent != 900 || goal.Name != "Remote" {
		t.Fatalf("expected remote result, got %#v", goal)
	}
}

func TestOfflineGoalOpsOnMissingID(t *testing.T) {
	env := setupEnv(t, nil)
	env.session.MarkOffline()
	ctx := context.Background()

	if _, err := env.goals.AddSession(ctx, "ghost", 60); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on session, got %v", err)
	}
	name := "renamed"
	if _, err := env.goals.Update(ctx, "ghost", model.GoalPatch{Name: &name}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
	if err := env.goals.Delete(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on delete, got %v", err)
	}
}

func TestGoalValidationBeforeNetwork(t *testing.T) {
	env := setupEnv(t, nil)

	_, err := env.goals.Create(context.Background(), model.Goal{Name: "No time", TotalTime: 0})
	if !errors.Is(err, model.ErrInvalidTotalTime) {
		t.Fatalf("expected ErrInvalidTotalTime, got %v", err)
	}
	if env.session.Offline() {
		t.Fatal("validation failures must not mark the session offline")
	}
}
