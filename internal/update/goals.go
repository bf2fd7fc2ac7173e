package update

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smarttodo/smarttodo/internal/focus"
	"github.com/smarttodo/smarttodo/internal/model"
)

func (m Model) handleGoalsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.Goals.Cursor < len(m.Goals.Items)-1 {
			m.Goals.Cursor++
		}
		return m, nil
	case "k", "up":
		if m.Goals.Cursor > 0 {
			m.Goals.Cursor--
		}
		return m, nil
	case "s", "enter":
		if goal, ok := m.currentGoal(); ok {
			return m.startShield(goal)
		}
		m.Status = StatusBar{Text: "no goal selected", IsError: true}
		return m, nil
	case "x":
		if goal, ok := m.currentGoal(); ok {
			return m, m.deleteGoalCmd(goal.ID)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) startShield(goal model.Goal) (tea.Model, tea.Cmd) {
	m.Shield.Session = focus.New(goal, m.userName, m.announcer)
	m.CurrentView = ViewShield
	m.Status = StatusBar{Text: "shield up, stay focused", IsError: false}
	return m, shieldTickCmd()
}

func (m Model) loadGoalsCmd() tea.Cmd {
	svc := m.services.Goals
	return func() tea.Msg {
		if svc == nil {
			return GoalsLoadedMsg{}
		}
		ctx, cancel := context.WithTimeout(context.Background(), serviceTimeout)
		defer cancel()
		goals, err := svc.GetAll(ctx)
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return GoalsLoadedMsg{Goals: goals}
	}
}

func (m Model) createGoalCmd(name string, totalHours float64) tea.Cmd {
	svc := m.services.Goals
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), serviceTimeout)
		defer cancel()
		goal, err := svc.Create(ctx, model.Goal{Name: name, TotalTime: totalHours})
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return GoalSavedMsg{Goal: goal}
	}
}

func (m Model) deleteGoalCmd(id string) tea.Cmd {
	svc := m.services.Goals
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), serviceTimeout)
		defer cancel()
		if err := svc.Delete(ctx, id); err != nil {
			return AppErrorMsg{Err: err}
		}
		return GoalDeletedMsg{ID: id}
	}
}

func (m Model) recordSessionCmd(goalID string, durationSec int) tea.Cmd {
	svc := m.services.Goals
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), serviceTimeout)
		defer cancel()
		goal, err := svc.AddSession(ctx, goalID, durationSec)
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return SessionRecordedMsg{Goal: goal}
	}
}
