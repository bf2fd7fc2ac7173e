package reminder

import (
	"testing"
	"time"

	"github.com/smarttodo/smarttodo/internal/model"
)

func dueTask(id string, due time.Time) model.Task {
	return model.Task{ID: id, Title: "task " + id, DueDate: &due}
}

func TestPlanProducesAllThreeThresholds(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	due := now.Add(2 * time.Hour)

	triggers := Plan([]model.Task{dueTask("t1", due)}, now)
	if len(triggers) != 3 {
		t.Fatalf("expected 3 triggers, got %d", len(triggers))
	}
	wantAt := map[Threshold]time.Time{
		ThresholdHour: due.Add(-60 * time.Minute),
		ThresholdHalf: due.Add(-30 * time.Minute),
		ThresholdDue:  due,
	}
	for _, tr := range triggers {
		if !tr.At.Equal(wantAt[tr.Threshold]) {
			t.Fatalf("threshold %d at %v, want %v", tr.Threshold, tr.At, wantAt[tr.Threshold])
		}
	}
}

func TestPlanSkipsCompletedAndUndatedTasks(t *testing.T) {
	now := time.Now().UTC()
	due := now.Add(time.Hour)
	done := dueTask("t1", due)
	done.Completed = true
	undated := model.Task{ID: "t2", Title: "no due date"}

	if triggers := Plan([]model.Task{done, undated}, now); len(triggers) != 0 {
		t.Fatalf("expected no triggers, got %d", len(triggers))
	}
}

func TestPlanSkipsThresholdsAlreadyPassed(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	// 45 minutes out: the 1-hour threshold is 15 minutes gone.
	due := now.Add(45 * time.Minute)

	triggers := Plan([]model.Task{dueTask("t1", due)}, now)
	if len(triggers) != 2 {
		t.Fatalf("expected 2 triggers, got %d", len(triggers))
	}
	for _, tr := range triggers {
		if tr.Threshold == ThresholdHour {
			t.Fatalf("1-hour threshold should have been skipped")
		}
	}
}

func TestPlanFiresJustMissedThresholdImmediately(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	// 30 seconds past the 30-minute threshold, inside the grace window.
	due := now.Add(30*time.Minute - 30*time.Second)

	triggers := Plan([]model.Task{dueTask("t1", due)}, now)
	var found bool
	for _, tr := range triggers {
		if tr.Threshold == ThresholdHalf {
			found = true
			if !tr.At.Equal(now) {
				t.Fatalf("late trigger at %v, want now", tr.At)
			}
		}
	}
	if !found {
		t.Fatalf("expected the 30-minute trigger inside the grace window")
	}
}
