package update

import (
	"sort"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smarttodo/smarttodo/internal/focus"
	"github.com/smarttodo/smarttodo/internal/model"
	"github.com/smarttodo/smarttodo/internal/reminder"
)

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "m":
		m.Settings.Muted = !m.Settings.Muted
		if m.Settings.Muted {
			m.announcer = focus.NoopAnnouncer{}
			m.Status = StatusBar{Text: "voice announcements muted", IsError: false}
		} else {
			m.announcer = focus.ExecAnnouncer{}
			m.Status = StatusBar{Text: "voice announcements on", IsError: false}
		}
		return m, nil
	case "n":
		m.Settings.DesktopNotifications = !m.Settings.DesktopNotifications
		if m.Settings.DesktopNotifications {
			m.notifier = reminder.ExecNotifier{}
			m.Status = StatusBar{Text: "desktop notifications on", IsError: false}
		} else {
			m.notifier = reminder.NoopNotifier{}
			m.Status = StatusBar{Text: "desktop notifications off", IsError: false}
		}
		return m, nil
	}
	return m, nil
}

// Analytics summarizes what the loaded data already shows. It is
// computed on render, never stored.
type Analytics struct {
	TotalTasks      int
	CompletedTasks  int
	ActiveGoals     int
	CompletedGoals  int
	FocusSeconds    int
	CompletionRatio float64
	ByCategory      []CategoryCount
}

type CategoryCount struct {
	Category  string
	Total     int
	Completed int
}

func (m Model) analytics() Analytics {
	a := Analytics{TotalTasks: len(m.Tasks.Items)}
	byCat := make(map[string]*CategoryCount)
	order := make([]string, 0)
	for _, task := range m.Tasks.Items {
		if task.Completed {
			a.CompletedTasks++
		}
		label := task.Category
		if label == "" {
			label = "uncategorized"
		}
		count, ok := byCat[label]
		if !ok {
			count = &CategoryCount{Category: label}
			byCat[label] = count
			order = append(order, label)
		}
		count.Total++
		if task.Completed {
			count.Completed++
		}
	}
	sort.Strings(order)
	for _, label := range order {
		a.ByCategory = append(a.ByCategory, *byCat[label])
	}
	for _, goal := range m.Goals.Items {
		a.FocusSeconds += goal.TimeSpent
		if goal.Status == model.GoalCompleted {
			a.CompletedGoals++
		} else {
			a.ActiveGoals++
		}
	}
	if a.TotalTasks > 0 {
		a.CompletionRatio = float64(a.CompletedTasks) / float64(a.TotalTasks)
	}
	return a
}
