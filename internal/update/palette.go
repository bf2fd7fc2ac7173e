package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smarttodo/smarttodo/internal/commands"
	"github.com/smarttodo/smarttodo/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
		return m, cmd
	}
}

func (m Model) executePaletteCommand() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	// Handlers resolve the target synchronously and hand the service
	// call back to the loop as a tea command.
	var out tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			out = m.createTaskCmd(a.Title, a.Category)
			return commands.Result{Message: fmt.Sprintf("adding task: %s", a.Title)}, nil
		},
		Done: func(a commands.DoneArgs) (commands.Result, error) {
			task, ok := m.findTask(a.Target)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task matching %q", a.Target)}
			}
			out = m.toggleTaskCmd(task)
			return commands.Result{Message: fmt.Sprintf("toggling: %s", task.Title)}, nil
		},
		Delete: func(a commands.DeleteArgs) (commands.Result, error) {
			task, ok := m.findTask(a.Target)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task matching %q", a.Target)}
			}
			out = m.deleteTaskCmd(task.ID)
			return commands.Result{Message: fmt.Sprintf("deleting: %s", task.Title)}, nil
		},
		Due: func(a commands.DueArgs) (commands.Result, error) {
			task, ok := m.findTask(a.Target)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task matching %q", a.Target)}
			}
			due, perr := parseWhen(a.When, nowUTC())
			if perr != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: perr.Error()}
			}
			out = m.setDueCmd(task.ID, due)
			return commands.Result{Message: fmt.Sprintf("due %s: %s", due.Local().Format("Jan 2 15:04"), task.Title)}, nil
		},
		Goal: func(a commands.GoalArgs) (commands.Result, error) {
			out = m.createGoalCmd(a.Name, a.Hours)
			return commands.Result{Message: fmt.Sprintf("adding goal: %s (%.1fh)", a.Name, a.Hours)}, nil
		},
		Focus: func(a commands.FocusArgs) (commands.Result, error) {
			for _, goal := range m.Goals.Items {
				if strings.EqualFold(goal.Name, a.Goal) || goal.ID == a.Goal {
					next, cmd := m.startShield(goal)
					m = next.(Model)
					out = cmd
					return commands.Result{Message: fmt.Sprintf("shield up for %s", goal.Name)}, nil
				}
			}
			return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no goal matching %q", a.Goal)}
		},
		Breakdown: func(a commands.BreakdownArgs) (commands.Result, error) {
			out = m.breakdownCmd(a.Title)
			return commands.Result{Message: fmt.Sprintf("breaking down: %s", a.Title)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	m.Status = StatusBar{Text: res.Message, IsError: false}
	return m, out
}

// findTask matches by exact ID first, then by case-insensitive title
// prefix so palette targets stay typeable.
func (m Model) findTask(target string) (model.Task, bool) {
	for _, task := range m.Tasks.Items {
		if task.ID == target {
			return task, true
		}
	}
	lowered := strings.ToLower(target)
	for _, task := range m.Tasks.Items {
		if strings.HasPrefix(strings.ToLower(task.Title), lowered) {
			return task, true
		}
	}
	return model.Task{}, false
}
