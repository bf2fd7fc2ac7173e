package update

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smarttodo/smarttodo/internal/config"
	"github.com/smarttodo/smarttodo/internal/focus"
	"github.com/smarttodo/smarttodo/internal/model"
	"github.com/smarttodo/smarttodo/internal/reminder"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := config.DefaultRuntimeConfig()
	cfg.Muted = true
	cfg.DesktopNotifications = false
	m := NewModel(Services{}, nil, cfg)
	m.SetCredential(model.Credential{ID: "u1", Name: "Sam", Guest: true})
	return m
}

func asModel(t *testing.T, tm tea.Model) Model {
	t.Helper()
	m, ok := tm.(Model)
	if !ok {
		t.Fatalf("unexpected model type %T", tm)
	}
	return m
}

func keyMsg(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModelDefaults(t *testing.T) {
	cfg := config.DefaultRuntimeConfig()
	m := NewModel(Services{}, nil, cfg)
	if m.CurrentView != ViewLogin {
		t.Fatalf("expected default view %q, got %q", ViewLogin, m.CurrentView)
	}
	if m.Keys.Quit != "q" {
		t.Fatalf("expected quit key q, got %q", m.Keys.Quit)
	}
}

func TestSetCredentialSkipsLogin(t *testing.T) {
	m := newTestModel(t)
	if m.CurrentView != ViewTasks {
		t.Fatalf("expected tasks view after auth, got %q", m.CurrentView)
	}
	if m.userName != "Sam" {
		t.Fatalf("expected user name from credential, got %q", m.userName)
	}
}

func TestUpdateKeySwitchesView(t *testing.T) {
	m := newTestModel(t)
	next := asModel(t, first(m.Update(keyMsg("2"))))
	if next.CurrentView != ViewGoals {
		t.Fatalf("expected goals view, got %q", next.CurrentView)
	}
	next = asModel(t, first(next.Update(keyMsg("4"))))
	if next.CurrentView != ViewSettings {
		t.Fatalf("expected settings view, got %q", next.CurrentView)
	}
}

func TestUpdateSwitchViewMsg(t *testing.T) {
	m := newTestModel(t)
	next := asModel(t, first(m.Update(SwitchViewMsg{View: ViewGoals})))
	if next.CurrentView != ViewGoals {
		t.Fatalf("expected goals view, got %q", next.CurrentView)
	}
	next = asModel(t, first(next.Update(SwitchViewMsg{View: View("Unknown")})))
	if next.CurrentView != ViewGoals {
		t.Fatalf("expected view unchanged for unknown view, got %q", next.CurrentView)
	}
}

func TestUpdateStatusAndError(t *testing.T) {
	m := newTestModel(t)
	next := asModel(t, first(m.Update(SetStatusMsg{Text: "ready"})))
	if next.Status.Text != "ready" || next.Status.IsError {
		t.Fatalf("unexpected status: %+v", next.Status)
	}

	next = asModel(t, first(next.Update(AppErrorMsg{Err: errors.New("boom")})))
	if next.LastError == nil || next.LastError.Error() != "boom" {
		t.Fatalf("expected last error boom, got: %v", next.LastError)
	}
	if !next.Status.IsError {
		t.Fatalf("unexpected error status: %+v", next.Status)
	}

	next = asModel(t, first(next.Update(ClearStatusMsg{})))
	if next.Status.Text != "" || next.Status.IsError {
		t.Fatalf("expected cleared status, got: %+v", next.Status)
	}
}

func TestTasksLoadedReplacesItems(t *testing.T) {
	m := newTestModel(t)
	tasks := []model.Task{
		{ID: "1", Title: "first"},
		{ID: "2", Title: "second"},
	}
	next := asModel(t, first(m.Update(TasksLoadedMsg{Tasks: tasks})))
	if len(next.Tasks.Items) != 2 || !next.Tasks.Loaded {
		t.Fatalf("tasks not loaded: %+v", next.Tasks)
	}
}

func TestLoadedItemsReachListPanes(t *testing.T) {
	m := newTestModel(t)
	tasks := []model.Task{
		{ID: "1", Title: "first"},
		{ID: "2", Title: "second"},
	}
	next := asModel(t, first(m.Update(TasksLoadedMsg{Tasks: tasks})))
	if got := len(next.taskList.Items()); got != 2 {
		t.Fatalf("taskList has %d items, want 2", got)
	}

	goals := []model.Goal{{ID: "g1", Name: "Deep Work", TotalTime: 1}}
	next = asModel(t, first(next.Update(GoalsLoadedMsg{Goals: goals})))
	if got := len(next.goalList.Items()); got != 1 {
		t.Fatalf("goalList has %d items, want 1", got)
	}
}

func TestShieldSessionDrivenByTicks(t *testing.T) {
	m := newTestModel(t)
	goal := model.Goal{ID: "g1", Name: "Deep Work", TotalTime: 1}
	next := asModel(t, first(m.Update(GoalsLoadedMsg{Goals: []model.Goal{goal}})))
	next.CurrentView = ViewGoals

	next = asModel(t, first(next.Update(keyMsg("s"))))
	if next.CurrentView != ViewShield || next.Shield.Session == nil {
		t.Fatalf("expected active shield session")
	}

	for i := 0; i < 10; i++ {
		next = asModel(t, first(next.Update(ShieldTickMsg{})))
	}
	if next.Shield.Session.Elapsed() != 10 {
		t.Fatalf("elapsed = %d, want 10", next.Shield.Session.Elapsed())
	}

	// Pause freezes the countdown even while ticks keep arriving.
	next = asModel(t, first(next.Update(keyMsg(" "))))
	next = asModel(t, first(next.Update(ShieldTickMsg{})))
	if next.Shield.Session.Elapsed() != 10 {
		t.Fatalf("elapsed advanced while paused: %d", next.Shield.Session.Elapsed())
	}
}

func TestShieldKeepsCountingPastGoalTarget(t *testing.T) {
	m := newTestModel(t)
	goal := model.Goal{ID: "g1", Name: "Deep Work", TotalTime: 2.0 / 3600}
	next := asModel(t, first(m.Update(GoalsLoadedMsg{Goals: []model.Goal{goal}})))
	next.CurrentView = ViewGoals
	next = asModel(t, first(next.Update(keyMsg("s"))))

	for i := 0; i < 3; i++ {
		next = asModel(t, first(next.Update(ShieldTickMsg{})))
	}
	session := next.Shield.Session
	if session == nil || session.State() != focus.StateRunning {
		t.Fatalf("session should still be running past the target")
	}
	if session.Elapsed() != 3 {
		t.Fatalf("elapsed = %d, want 3", session.Elapsed())
	}
	if pct := session.Progress(); pct != 100 {
		t.Fatalf("progress = %v, want clamped 100", pct)
	}
}

func TestShieldEarlyExitDiscards(t *testing.T) {
	m := newTestModel(t)
	goal := model.Goal{ID: "g1", Name: "Deep Work", TotalTime: 1}
	next := asModel(t, first(m.Update(GoalsLoadedMsg{Goals: []model.Goal{goal}})))
	next.CurrentView = ViewGoals
	next = asModel(t, first(next.Update(keyMsg("s"))))

	next = asModel(t, first(next.Update(keyMsg("esc"))))
	if next.Shield.Session != nil {
		t.Fatalf("early exit should discard the session")
	}
	if next.CurrentView != ViewGoals {
		t.Fatalf("expected goals view after discard, got %q", next.CurrentView)
	}
	if !strings.Contains(next.Status.Text, "discarded") {
		t.Fatalf("status = %q", next.Status.Text)
	}
}

func TestShieldLateExitAsksForConfirmation(t *testing.T) {
	m := newTestModel(t)
	goal := model.Goal{ID: "g1", Name: "Deep Work", TotalTime: 1}
	next := asModel(t, first(m.Update(GoalsLoadedMsg{Goals: []model.Goal{goal}})))
	next.CurrentView = ViewGoals
	next = asModel(t, first(next.Update(keyMsg("s"))))

	for i := 0; i < 61; i++ {
		next = asModel(t, first(next.Update(ShieldTickMsg{})))
	}
	next = asModel(t, first(next.Update(keyMsg("esc"))))
	if next.Shield.Session == nil || next.Shield.Session.State() != focus.StateConfirmingExit {
		t.Fatalf("expected confirm prompt after 61s")
	}

	next = asModel(t, first(next.Update(keyMsg("n"))))
	if next.Shield.Session.State() != focus.StateRunning {
		t.Fatalf("expected running after cancel, got %s", next.Shield.Session.State())
	}
}

func TestSessionRecordedReturnsToGoals(t *testing.T) {
	m := newTestModel(t)
	m.CurrentView = ViewShield
	goal := model.Goal{ID: "g1", Name: "Deep Work", TotalTime: 1, TimeSpent: 1800}
	next := asModel(t, first(m.Update(SessionRecordedMsg{Goal: goal})))
	if next.CurrentView != ViewGoals || next.Shield.Session != nil {
		t.Fatalf("expected goals view and no session, got %q", next.CurrentView)
	}
}

func TestReminderDueDedupes(t *testing.T) {
	m := newTestModel(t)
	tr := reminder.Trigger{TaskID: "t1", TaskTitle: "pay rent", Threshold: reminder.ThresholdHalf, At: time.Now()}

	next := asModel(t, first(m.Update(ReminderDueMsg{Trigger: tr})))
	if !strings.Contains(next.Status.Text, "pay rent") {
		t.Fatalf("status = %q", next.Status.Text)
	}

	next.Status = StatusBar{}
	next = asModel(t, first(next.Update(ReminderDueMsg{Trigger: tr})))
	if next.Status.Text != "" {
		t.Fatalf("duplicate trigger should not notify again, status = %q", next.Status.Text)
	}
}

func TestSettingsToggles(t *testing.T) {
	m := newTestModel(t)
	m.CurrentView = ViewSettings
	next := asModel(t, first(m.Update(keyMsg("m"))))
	if next.Settings.Muted {
		t.Fatalf("expected mute toggled off")
	}
	next = asModel(t, first(next.Update(keyMsg("n"))))
	if !next.Settings.DesktopNotifications {
		t.Fatalf("expected notifications toggled on")
	}
}

func TestPaletteParseErrorSurfacesInStatus(t *testing.T) {
	m := newTestModel(t)
	next := asModel(t, first(m.Update(keyMsg("/"))))
	if !next.Palette.Active {
		t.Fatalf("expected palette active")
	}
	for _, r := range "bogus" {
		next = asModel(t, first(next.Update(keyMsg(string(r)))))
	}
	next = asModel(t, first(next.Update(keyMsg("enter"))))
	if next.Palette.Active {
		t.Fatalf("palette should close after execute")
	}
	if !next.Status.IsError || !strings.Contains(next.Status.Text, "unknown_command") {
		t.Fatalf("status = %+v", next.Status)
	}
}

func TestViewRendersWithoutData(t *testing.T) {
	m := newTestModel(t)
	for _, v := range []View{ViewTasks, ViewGoals, ViewShield, ViewSettings} {
		m.CurrentView = v
		if out := m.View(); strings.TrimSpace(out) == "" {
			t.Fatalf("empty render for view %s", v)
		}
	}
}

func first(tm tea.Model, _ tea.Cmd) tea.Model { return tm }
