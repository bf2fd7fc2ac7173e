package views

import (
	"fmt"
	"strings"
)

type TaskRowData struct {
	ID        string
	Title     string
	Category  string
	Priority  string
	Completed bool
	DueAt     string
}

type TasksPanelData struct {
	ListView     string
	QuickAddView string
	Rows         []TaskRowData
	SelectedID   string
	PlanMarkdown string
}

type GoalRowData struct {
	ID       string
	Name     string
	Status   string
	Progress string
}

type GoalsPanelData struct {
	ListView   string
	Rows       []GoalRowData
	SelectedID string
}

type ShieldPanelData struct {
	GoalName      string
	State         string
	Timer         string
	ProgressView  string
	ProgressPct   int
	ConfirmPrompt bool
	Paused        bool
}

type LoginPanelData struct {
	Registering  bool
	NameView     string
	EmailView    string
	PasswordView string
	Submitting   bool
}

type SettingsPanelData struct {
	Muted                bool
	DesktopNotifications bool
	AnalyticsView        string
}

type CategoryCountData struct {
	Category  string
	Total     int
	Completed int
}

type AnalyticsData struct {
	TotalTasks      int
	CompletedTasks  int
	ActiveGoals     int
	CompletedGoals  int
	FocusTime       string
	CompletionRatio float64
	ByCategory      []CategoryCountData
}

func RenderTasksPanel(data TasksPanelData) string {
	var b strings.Builder
	b.WriteString("tasks:\n")
	b.WriteString("actions: [a]add [enter]toggle [x]delete [b]breakdown [j/k]move\n")
	if data.QuickAddView != "" {
		b.WriteString(data.QuickAddView + "\n")
	}
	b.WriteString(data.ListView + "\n")
	for _, row := range data.Rows {
		cursor := " "
		if row.ID == data.SelectedID {
			cursor = ">"
		}
		mark := "[ ]"
		if row.Completed {
			mark = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s %s %s", cursor, mark, row.Title))
		if row.Category != "" {
			b.WriteString(" #" + row.Category)
		}
		if row.DueAt != "" {
			b.WriteString(" due:" + row.DueAt)
		}
		b.WriteString("\n")
	}
	if strings.TrimSpace(data.PlanMarkdown) != "" {
		b.WriteString("\nbreakdown:\n")
		b.WriteString(RenderMarkdown(data.PlanMarkdown))
	}
	return strings.TrimSpace(b.String())
}

func RenderGoalsPanel(data GoalsPanelData) string {
	var b strings.Builder
	b.WriteString("goals:\n")
	b.WriteString("actions: [s]start shield [x]delete [j/k]move\n")
	b.WriteString(data.ListView + "\n")
	for _, row := range data.Rows {
		cursor := " "
		if row.ID == data.SelectedID {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s | %s | %s\n", cursor, row.Name, row.Status, row.Progress))
	}
	if len(data.Rows) == 0 {
		b.WriteString("(no goals yet)\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderShieldPanel(data ShieldPanelData) string {
	var b strings.Builder
	b.WriteString("shield mode:\n")
	if data.GoalName == "" {
		b.WriteString("(no active session, pick a goal and press s)")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("goal: %s\n", Accent(data.GoalName)))
	b.WriteString(fmt.Sprintf("state: %s\n", strings.ToUpper(data.State)))
	b.WriteString(fmt.Sprintf("elapsed: %s\n", data.Timer))
	b.WriteString(fmt.Sprintf("progress: %s %d%%\n", data.ProgressView, data.ProgressPct))
	b.WriteString("actions: [space]pause [esc]exit [c]complete\n")
	if data.Paused {
		b.WriteString("paused, press space to resume\n")
	}
	if data.ConfirmPrompt {
		b.WriteString("prompt: leave this session? progress will be saved. [y/n]")
	}
	return strings.TrimSpace(b.String())
}

func RenderLoginPanel(data LoginPanelData) string {
	var b strings.Builder
	if data.Registering {
		b.WriteString("register:\n")
		b.WriteString("name:     " + data.NameView + "\n")
	} else {
		b.WriteString("sign in:\n")
	}
	b.WriteString("email:    " + data.EmailView + "\n")
	b.WriteString("password: " + data.PasswordView + "\n")
	b.WriteString("actions: [enter]submit [tab]next [ctrl+r]toggle register [ctrl+g]guest\n")
	if data.Submitting {
		b.WriteString("working...")
	}
	return strings.TrimSpace(b.String())
}

func RenderSettingsPanel(data SettingsPanelData) string {
	var b strings.Builder
	b.WriteString("settings:\n")
	b.WriteString(fmt.Sprintf("[m] voice announcements: %s\n", onOff(!data.Muted)))
	b.WriteString(fmt.Sprintf("[n] desktop notifications: %s\n", onOff(data.DesktopNotifications)))
	if data.AnalyticsView != "" {
		b.WriteString("\n" + data.AnalyticsView)
	}
	return strings.TrimSpace(b.String())
}

func RenderAnalytics(data AnalyticsData) string {
	var b strings.Builder
	b.WriteString("analytics:\n")
	b.WriteString(fmt.Sprintf("tasks: %d done / %d total (%.0f%%)\n",
		data.CompletedTasks, data.TotalTasks, data.CompletionRatio*100))
	b.WriteString(fmt.Sprintf("goals: %d active, %d completed\n", data.ActiveGoals, data.CompletedGoals))
	b.WriteString(fmt.Sprintf("focus time: %s", data.FocusTime))
	for _, c := range data.ByCategory {
		b.WriteString(fmt.Sprintf("\n  %s: %d/%d", c.Category, c.Completed, c.Total))
	}
	return b.String()
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
