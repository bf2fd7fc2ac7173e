// Package update implements the Elm-style model and message loop for
// the terminal UI. All service calls run as tea commands so the loop
// itself never blocks on the network or the mirror.
package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/smarttodo/smarttodo/internal/config"
	"github.com/smarttodo/smarttodo/internal/focus"
	"github.com/smarttodo/smarttodo/internal/gateway"
	"github.com/smarttodo/smarttodo/internal/model"
	"github.com/smarttodo/smarttodo/internal/reminder"
)

type View string

const (
	ViewLogin    View = "Login"
	ViewTasks    View = "Tasks"
	ViewGoals    View = "Goals"
	ViewShield   View = "Shield"
	ViewSettings View = "Settings"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Tasks    string
	Goals    string
	Shield   string
	Settings string
	Help     string
	Quit     string
}

// Services bundles the gateway layer the loop calls into. Tests swap in
// services wired to a closed backend to exercise offline flows.
type Services struct {
	Tasks      *gateway.TaskService
	Goals      *gateway.GoalService
	Categories *gateway.CategoryService
	Users      *gateway.UserService
	AI         *gateway.AIService
}

type TasksState struct {
	Items      []model.Task
	Cursor     int
	Loaded     bool
	Categories []model.Category
	Plan       string
}

type GoalsState struct {
	Items  []model.Goal
	Cursor int
	Loaded bool
}

type ShieldState struct {
	Session *focus.Session
}

type LoginField int

const (
	LoginFieldName LoginField = iota
	LoginFieldEmail
	LoginFieldPassword
)

type LoginState struct {
	Registering bool
	Field       LoginField
	Submitting  bool
}

type SettingsState struct {
	Muted                bool
	DesktopNotifications bool
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	CurrentView View
	Credential  *model.Credential
	Tasks       TasksState
	Goals       GoalsState
	Shield      ShieldState
	Login       LoginState
	Settings    SettingsState
	Palette     CommandPaletteState
	HelpVisible bool
	Status      StatusBar
	Keys        GlobalKeyMap
	Quitting    bool
	LastError   error

	services  Services
	engine    *reminder.Engine
	tracker   *reminder.Tracker
	notifier  reminder.Notifier
	announcer focus.Announcer
	userName  string

	taskList      list.Model
	goalList      list.Model
	quickAddInput textinput.Model
	commandInput  textinput.Model
	nameInput     textinput.Model
	emailInput    textinput.Model
	passwordInput textinput.Model
	shieldRing    progress.Model
	syncSpinner   spinner.Model
	helpModel     help.Model
	spinnerActive bool
}

type listItem struct {
	title       string
	description string
}

func (i listItem) FilterValue() string { return i.title + " " + i.description }
func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.description }

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type TasksLoadedMsg struct {
	Tasks []model.Task
}

type TaskSavedMsg struct {
	Task model.Task
}

type TaskDeletedMsg struct {
	ID string
}

type CategoriesLoadedMsg struct {
	Categories []model.Category
}

type GoalsLoadedMsg struct {
	Goals []model.Goal
}

type GoalSavedMsg struct {
	Goal model.Goal
}

type GoalDeletedMsg struct {
	ID string
}

type SessionRecordedMsg struct {
	Goal model.Goal
}

type LoggedInMsg struct {
	Credential model.Credential
}

type AIBreakdownMsg struct {
	Title string
	Plan  string
}

type ShieldTickMsg struct{}

type ReminderDueMsg struct {
	Trigger reminder.Trigger
}

func NewModel(services Services, engine *reminder.Engine, cfg config.RuntimeConfig) Model {
	m := Model{
		CurrentView: ViewLogin,
		services:    services,
		engine:      engine,
		tracker:     reminder.NewTracker(),
		notifier:    reminder.NoopNotifier{},
		announcer:   focus.NoopAnnouncer{},
		userName:    cfg.UserName,
		Settings: SettingsState{
			Muted:                cfg.Muted,
			DesktopNotifications: cfg.DesktopNotifications,
		},
		Keys: GlobalKeyMap{
			Tasks:    "1",
			Goals:    "2",
			Shield:   "3",
			Settings: "4",
			Help:     "?",
			Quit:     "q",
		},
	}
	if cfg.DesktopNotifications {
		m.notifier = reminder.ExecNotifier{}
	}
	if !cfg.Muted {
		m.announcer = focus.ExecAnnouncer{}
	}
	m.initComponents()
	return m
}

// SetCredential pre-authenticates the model, skipping the login view.
func (m *Model) SetCredential(cred model.Credential) {
	m.Credential = &cred
	m.CurrentView = ViewTasks
	if cred.Name != "" {
		m.userName = cred.Name
	}
}

func (m *Model) initComponents() {
	m.taskList = list.New(nil, list.NewDefaultDelegate(), 52, 14)
	m.taskList.Title = "Tasks"
	m.taskList.SetShowHelp(false)

	m.goalList = list.New(nil, list.NewDefaultDelegate(), 52, 14)
	m.goalList.Title = "Goals"
	m.goalList.SetShowHelp(false)

	m.quickAddInput = textinput.New()
	m.quickAddInput.Placeholder = "new task title"
	m.quickAddInput.CharLimit = 120

	m.commandInput = textinput.New()
	m.commandInput.Placeholder = "/add buy milk cat:shopping"
	m.commandInput.CharLimit = 160

	m.nameInput = textinput.New()
	m.nameInput.Placeholder = "name"
	m.emailInput = textinput.New()
	m.emailInput.Placeholder = "email"
	m.passwordInput = textinput.New()
	m.passwordInput.Placeholder = "password"
	m.passwordInput.EchoMode = textinput.EchoPassword

	m.shieldRing = progress.New(progress.WithDefaultGradient())
	m.syncSpinner = spinner.New(spinner.WithSpinner(spinner.Dot))
	m.helpModel = help.New()
}

func (m *Model) syncListData() {
	taskItems := make([]list.Item, 0, len(m.Tasks.Items))
	for _, task := range m.Tasks.Items {
		desc := task.Category
		if task.DueDate != nil {
			desc += " due " + task.DueDate.Local().Format("Jan 2 15:04")
		}
		title := task.Title
		if task.Completed {
			title = "[done] " + title
		}
		taskItems = append(taskItems, listItem{title: title, description: desc})
	}
	m.taskList.SetItems(taskItems)

	goalItems := make([]list.Item, 0, len(m.Goals.Items))
	for _, goal := range m.Goals.Items {
		goalItems = append(goalItems, listItem{
			title:       goal.Name,
			description: formatGoalProgress(goal),
		})
	}
	m.goalList.SetItems(goalItems)
}

func (m *Model) currentTask() (model.Task, bool) {
	if m.Tasks.Cursor < 0 || m.Tasks.Cursor >= len(m.Tasks.Items) {
		return model.Task{}, false
	}
	return m.Tasks.Items[m.Tasks.Cursor], true
}

func (m *Model) currentGoal() (model.Goal, bool) {
	if m.Goals.Cursor < 0 || m.Goals.Cursor >= len(m.Goals.Items) {
		return model.Goal{}, false
	}
	return m.Goals.Items[m.Goals.Cursor], true
}

func (m *Model) notify(title, body string) {
	if !m.Settings.DesktopNotifications {
		return
	}
	_ = m.notifier.Send(reminder.Notification{Title: title, Body: body})
}

func nowUTC() time.Time { return time.Now().UTC() }
