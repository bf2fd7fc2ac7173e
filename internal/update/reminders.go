package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smarttodo/smarttodo/internal/reminder"
)

func waitForReminderCmd(ch <-chan reminder.Trigger) tea.Cmd {
	return func() tea.Msg {
		tr, ok := <-ch
		if !ok {
			return nil
		}
		return ReminderDueMsg{Trigger: tr}
	}
}

func (m Model) onReminderDue(tr reminder.Trigger) (tea.Model, tea.Cmd) {
	next := tea.Cmd(nil)
	if m.engine != nil {
		next = waitForReminderCmd(m.engine.C())
	}

	// The planner reschedules on every task reload, so the tracker is
	// the only thing keeping a threshold from firing twice.
	if !m.tracker.ShouldFire(tr.TaskID, tr.Threshold, nowUTC()) {
		return m, next
	}
	m.tracker.Prune(nowUTC())

	body := reminder.ThresholdMessage(tr.Threshold)
	m.Status = StatusBar{Text: fmt.Sprintf("%s: %s", tr.TaskTitle, body), IsError: tr.Threshold == reminder.ThresholdDue}
	m.notify(tr.TaskTitle, body)
	return m, next
}

// scheduleRemindersCmd plans triggers for the freshly loaded task list.
// Already-fired pairs get scheduled again and are dropped by the
// tracker when they fire.
func (m Model) scheduleRemindersCmd() tea.Cmd {
	engine := m.engine
	tasks := m.Tasks.Items
	return func() tea.Msg {
		if engine == nil {
			return nil
		}
		for _, tr := range reminder.Plan(tasks, nowUTC()) {
			if err := engine.Schedule(tr); err != nil {
				return AppErrorMsg{Err: err}
			}
		}
		return nil
	}
}
