package update

import (
	"github.com/smarttodo/smarttodo/internal/focus"
	"github.com/smarttodo/smarttodo/internal/views"
)

func (m Model) renderTasksView() string {
	rows := make([]views.TaskRowData, 0, len(m.Tasks.Items))
	selectedID := ""
	for i, task := range m.Tasks.Items {
		due := ""
		if task.DueDate != nil {
			due = task.DueDate.Local().Format("Jan 2 15:04")
		}
		rows = append(rows, views.TaskRowData{
			ID:        task.ID,
			Title:     task.Title,
			Category:  task.Category,
			Priority:  string(task.Priority),
			Completed: task.Completed,
			DueAt:     due,
		})
		if i == m.Tasks.Cursor {
			selectedID = task.ID
		}
	}
	quickAdd := ""
	if m.quickAddInput.Focused() {
		quickAdd = "add: " + m.quickAddInput.View()
	}
	return views.RenderTasksPanel(views.TasksPanelData{
		ListView:     m.taskList.View(),
		QuickAddView: quickAdd,
		Rows:         rows,
		SelectedID:   selectedID,
		PlanMarkdown: m.Tasks.Plan,
	})
}

func (m Model) renderGoalsView() string {
	rows := make([]views.GoalRowData, 0, len(m.Goals.Items))
	selectedID := ""
	for i, goal := range m.Goals.Items {
		rows = append(rows, views.GoalRowData{
			ID:       goal.ID,
			Name:     goal.Name,
			Status:   string(goal.Status),
			Progress: formatGoalProgress(goal),
		})
		if i == m.Goals.Cursor {
			selectedID = goal.ID
		}
	}
	return views.RenderGoalsPanel(views.GoalsPanelData{
		ListView:   m.goalList.View(),
		Rows:       rows,
		SelectedID: selectedID,
	})
}

func (m Model) renderShieldView() string {
	session := m.Shield.Session
	if session == nil {
		return views.RenderShieldPanel(views.ShieldPanelData{})
	}
	pct := session.Progress()
	return views.RenderShieldPanel(views.ShieldPanelData{
		GoalName:      session.Goal().Name,
		State:         string(session.State()),
		Timer:         session.FormatElapsed(),
		ProgressView:  m.shieldRing.ViewAs(pct / 100),
		ProgressPct:   int(pct),
		ConfirmPrompt: session.State() == focus.StateConfirmingExit,
		Paused:        session.State() == focus.StatePaused,
	})
}

func (m Model) renderLoginView() string {
	return views.RenderLoginPanel(views.LoginPanelData{
		Registering:  m.Login.Registering,
		NameView:     m.nameInput.View(),
		EmailView:    m.emailInput.View(),
		PasswordView: m.passwordInput.View(),
		Submitting:   m.Login.Submitting,
	})
}

func (m Model) renderSettingsView() string {
	a := m.analytics()
	return views.RenderSettingsPanel(views.SettingsPanelData{
		Muted:                m.Settings.Muted,
		DesktopNotifications: m.Settings.DesktopNotifications,
		AnalyticsView: views.RenderAnalytics(views.AnalyticsData{
			TotalTasks:      a.TotalTasks,
			CompletedTasks:  a.CompletedTasks,
			ActiveGoals:     a.ActiveGoals,
			CompletedGoals:  a.CompletedGoals,
			FocusTime:       formatSeconds(a.FocusSeconds),
			CompletionRatio: a.CompletionRatio,
			ByCategory:      categoryCounts(a.ByCategory),
		}),
	})
}

func categoryCounts(counts []CategoryCount) []views.CategoryCountData {
	out := make([]views.CategoryCountData, 0, len(counts))
	for _, c := range counts {
		out = append(out, views.CategoryCountData{Category: c.Category, Total: c.Total, Completed: c.Completed})
	}
	return out
}
