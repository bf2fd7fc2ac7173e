package update

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/smarttodo/smarttodo/internal/api"
	"github.com/smarttodo/smarttodo/internal/gateway"
	"github.com/smarttodo/smarttodo/internal/model"
)

func formatGoalProgress(goal model.Goal) string {
	return fmt.Sprintf("%s | %s of %.1fh (%.0f%%)",
		goal.Status, formatSeconds(goal.TimeSpent), goal.TotalTime, goal.Progress())
}

func formatSeconds(total int) string {
	h := total / 3600
	m := (total % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

func friendlyError(err error) string {
	switch {
	case errors.Is(err, api.ErrUnreachable):
		return "server unreachable, working offline"
	case errors.Is(err, api.ErrUnauthorized):
		return "session expired, please sign in again"
	case errors.Is(err, gateway.ErrNotFound):
		return "not found"
	case errors.Is(err, gateway.ErrLastCategory):
		return "you need at least one category"
	default:
		return err.Error()
	}
}

// parseWhen turns palette time arguments into an absolute time.
// Accepted forms: "tomorrow", "today 17:00", "17:00", "2026-03-01 17:00"
// and bare durations like "30m" or "2h".
func parseWhen(raw string, now time.Time) (time.Time, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return time.Time{}, fmt.Errorf("empty time")
	}

	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return now.Add(d), nil
	}

	base := now
	switch {
	case strings.HasPrefix(s, "tomorrow"):
		base = now.AddDate(0, 0, 1)
		s = strings.TrimSpace(strings.TrimPrefix(s, "tomorrow"))
	case strings.HasPrefix(s, "today"):
		s = strings.TrimSpace(strings.TrimPrefix(s, "today"))
	}
	if s == "" {
		// Date keyword alone defaults to 09:00.
		y, mo, d := base.Date()
		return time.Date(y, mo, d, 9, 0, 0, 0, base.Location()), nil
	}

	if t, err := time.ParseInLocation("2006-01-02 15:04", s, now.Location()); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", s, now.Location()); err == nil {
		return t.Add(9 * time.Hour), nil
	}
	if t, err := time.ParseInLocation("15:04", s, now.Location()); err == nil {
		y, mo, d := base.Date()
		return time.Date(y, mo, d, t.Hour(), t.Minute(), 0, 0, base.Location()), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", raw)
}
