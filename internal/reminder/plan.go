package reminder

import (
	"time"

	"github.com/smarttodo/smarttodo/internal/model"
)

var thresholds = []Threshold{ThresholdHour, ThresholdHalf, ThresholdDue}

// A trigger whose moment passed within this window still fires, so a
// task loaded just after its threshold is not silently skipped.
const lateGrace = time.Minute

// Plan computes the triggers for the current task list. Completed tasks
// and tasks without a due date produce nothing. Thresholds already more
// than a minute in the past are skipped; dedupe across reloads is the
// Tracker's job.
func Plan(tasks []model.Task, now time.Time) []Trigger {
	triggers := make([]Trigger, 0)
	for _, task := range tasks {
		if task.Completed || task.DueDate == nil {
			continue
		}
		for _, th := range thresholds {
			at := task.DueDate.Add(-time.Duration(th) * time.Minute)
			if now.Sub(at) > lateGrace {
				continue
			}
			if at.Before(now) {
				at = now
			}
			triggers = append(triggers, Trigger{
				TaskID:    task.ID,
				TaskTitle: task.Title,
				Threshold: th,
				At:        at,
			})
		}
	}
	return triggers
}
