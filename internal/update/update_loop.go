package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smarttodo/smarttodo/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.engine != nil {
		cmds = append(cmds, waitForReminderCmd(m.engine.C()))
	}
	if m.CurrentView != ViewLogin {
		cmds = append(cmds, m.loadTasksCmd(), m.loadGoalsCmd(), m.loadCategoriesCmd())
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case spinner.TickMsg:
		if m.spinnerActive {
			var cmd tea.Cmd
			m.syncSpinner, cmd = m.syncSpinner.Update(typed)
			return m, cmd
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		m.spinnerActive = false
		m.Login.Submitting = false
		if typed.Err != nil {
			m.Status = StatusBar{Text: friendlyError(typed.Err), IsError: true}
		}
		return m, nil
	case TasksLoadedMsg:
		m.Tasks.Items = typed.Tasks
		m.Tasks.Loaded = true
		m.spinnerActive = false
		if m.Tasks.Cursor >= len(typed.Tasks) {
			m.Tasks.Cursor = 0
		}
		// Sync on the copy being returned; a deferred call would mutate a
		// copy the caller never sees.
		m.syncListData()
		return m, m.scheduleRemindersCmd()
	case TaskSavedMsg:
		m.Status = StatusBar{Text: fmt.Sprintf("saved: %s", typed.Task.Title), IsError: false}
		return m, m.loadTasksCmd()
	case TaskDeletedMsg:
		m.Status = StatusBar{Text: "task deleted", IsError: false}
		return m, m.loadTasksCmd()
	case CategoriesLoadedMsg:
		m.Tasks.Categories = typed.Categories
		return m, nil
	case GoalsLoadedMsg:
		m.Goals.Items = typed.Goals
		m.Goals.Loaded = true
		if m.Goals.Cursor >= len(typed.Goals) {
			m.Goals.Cursor = 0
		}
		m.syncListData()
		return m, nil
	case GoalSavedMsg:
		m.Status = StatusBar{Text: fmt.Sprintf("saved: %s", typed.Goal.Name), IsError: false}
		return m, m.loadGoalsCmd()
	case GoalDeletedMsg:
		m.Status = StatusBar{Text: "goal deleted", IsError: false}
		return m, m.loadGoalsCmd()
	case SessionRecordedMsg:
		m.Shield.Session = nil
		m.CurrentView = ViewGoals
		m.Status = StatusBar{Text: fmt.Sprintf("session recorded for %s", typed.Goal.Name), IsError: false}
		return m, m.loadGoalsCmd()
	case LoggedInMsg:
		m.SetCredential(typed.Credential)
		m.Login.Submitting = false
		m.Status = StatusBar{Text: fmt.Sprintf("welcome, %s", m.userName), IsError: false}
		return m, tea.Batch(m.loadTasksCmd(), m.loadGoalsCmd(), m.loadCategoriesCmd())
	case AIBreakdownMsg:
		m.Status = StatusBar{Text: "breakdown ready", IsError: false}
		return m.withBreakdown(typed)
	case ShieldTickMsg:
		return m.onShieldTick()
	case ReminderDueMsg:
		return m.onReminderDue(typed.Trigger)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.CurrentView == ViewLogin {
		return m.handleLoginKey(msg)
	}

	if m.Palette.Active {
		return m.handlePaletteKey(msg)
	}
	if m.quickAddInput.Focused() {
		return m.handleQuickAddKey(msg)
	}
	// Shield captures everything so a stray keystroke cannot leave the
	// countdown without going through the exit flow.
	if m.CurrentView == ViewShield && m.Shield.Session != nil {
		return m.handleShieldKey(msg)
	}

	switch msg.String() {
	case "/":
		m.Palette.Active = true
		m.commandInput.Focus()
		m.commandInput.SetValue("")
		m.Status = StatusBar{Text: "command palette active", IsError: false}
		return m, nil
	case m.Keys.Tasks:
		m.CurrentView = ViewTasks
		return m, nil
	case m.Keys.Goals:
		m.CurrentView = ViewGoals
		return m, nil
	case m.Keys.Shield:
		m.CurrentView = ViewShield
		return m, nil
	case m.Keys.Settings:
		m.CurrentView = ViewSettings
		return m, nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case "S":
		if !m.spinnerActive {
			m.spinnerActive = true
			m.Status = StatusBar{Text: "refreshing from server", IsError: false}
			return m, tea.Batch(m.syncSpinner.Tick, m.loadTasksCmd(), m.loadGoalsCmd())
		}
		return m, nil
	case "ctrl+c", m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	}

	switch m.CurrentView {
	case ViewTasks:
		return m.handleTasksKey(msg)
	case ViewGoals:
		return m.handleGoalsKey(msg)
	case ViewShield:
		return m.handleShieldKey(msg)
	case ViewSettings:
		return m.handleSettingsKey(msg)
	}
	return m, nil
}

func (m Model) View() string {
	status := m.Status.Text
	if m.Status.IsError && status != "" {
		status = "error: " + status
	}
	if m.spinnerActive {
		status = m.syncSpinner.View() + " " + status
	}

	var body string
	switch m.CurrentView {
	case ViewLogin:
		body = m.renderLoginView()
	case ViewTasks:
		body = m.renderTasksView()
	case ViewGoals:
		body = m.renderGoalsView()
	case ViewShield:
		body = m.renderShieldView()
	case ViewSettings:
		body = m.renderSettingsView()
	}

	sidebar := ""
	if m.Palette.Active {
		sidebar = "command: " + m.commandInput.View()
	}
	if m.HelpVisible {
		sidebar += "\n" + helpText
	}

	return views.RenderApp(views.AppData{
		Header:     m.headerLine(),
		Body:       body,
		Sidebar:    sidebar,
		StatusLine: status,
		Footer: fmt.Sprintf("keys: %s tasks | %s goals | %s shield | %s settings | / cmd | %s help | %s quit",
			m.Keys.Tasks, m.Keys.Goals, m.Keys.Shield, m.Keys.Settings, m.Keys.Help, m.Keys.Quit),
	})
}

const helpText = `a: add task  enter: toggle done  x: delete  b: breakdown
s: start shield  space: pause  esc: exit  /goal <name> <hours>: add goal`

func (m Model) headerLine() string {
	who := "guest"
	if m.Credential != nil {
		who = m.Credential.Name
		if who == "" {
			who = m.Credential.Email
		}
	}
	return fmt.Sprintf("smarttodo | view: %s | %s", m.CurrentView, who)
}

func isKnownView(v View) bool {
	switch v {
	case ViewLogin, ViewTasks, ViewGoals, ViewShield, ViewSettings:
		return true
	default:
		return false
	}
}
