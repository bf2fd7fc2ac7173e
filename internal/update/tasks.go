package update

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smarttodo/smarttodo/internal/model"
)

const serviceTimeout = 35 * time.Second

func (m Model) handleTasksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "a":
		m.quickAddInput.Focus()
		m.quickAddInput.SetValue("")
		m.Status = StatusBar{Text: "type a title, enter to add", IsError: false}
		return m, nil
	case "j", "down":
		if m.Tasks.Cursor < len(m.Tasks.Items)-1 {
			m.Tasks.Cursor++
		}
		return m, nil
	case "k", "up":
		if m.Tasks.Cursor > 0 {
			m.Tasks.Cursor--
		}
		return m, nil
	case "enter":
		if task, ok := m.currentTask(); ok {
			return m, m.toggleTaskCmd(task)
		}
		return m, nil
	case "x":
		if task, ok := m.currentTask(); ok {
			return m, m.deleteTaskCmd(task.ID)
		}
		return m, nil
	case "b":
		if task, ok := m.currentTask(); ok {
			m.Status = StatusBar{Text: "asking for a breakdown", IsError: false}
			return m, m.breakdownCmd(task.Title)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleQuickAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		title := strings.TrimSpace(m.quickAddInput.Value())
		m.quickAddInput.Blur()
		m.quickAddInput.SetValue("")
		if title == "" {
			return m, nil
		}
		return m, m.createTaskCmd(title, "")
	case "esc":
		m.quickAddInput.Blur()
		m.quickAddInput.SetValue("")
		return m, nil
	}
	var cmd tea.Cmd
	m.quickAddInput, cmd = m.quickAddInput.Update(msg)
	return m, cmd
}

func (m Model) withBreakdown(msg AIBreakdownMsg) (tea.Model, tea.Cmd) {
	m.Tasks.Plan = msg.Plan
	return m, nil
}

func (m Model) loadTasksCmd() tea.Cmd {
	svc := m.services.Tasks
	return func() tea.Msg {
		if svc == nil {
			return TasksLoadedMsg{}
		}
		ctx, cancel := context.WithTimeout(context.Background(), serviceTimeout)
		defer cancel()
		tasks, err := svc.GetAll(ctx)
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return TasksLoadedMsg{Tasks: tasks}
	}
}

func (m Model) loadCategoriesCmd() tea.Cmd {
	svc := m.services.Categories
	return func() tea.Msg {
		if svc == nil {
			return CategoriesLoadedMsg{}
		}
		categories, err := svc.List()
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return CategoriesLoadedMsg{Categories: categories}
	}
}

func (m Model) createTaskCmd(title, category string) tea.Cmd {
	svc := m.services.Tasks
	ai := m.services.AI
	categories := m.Tasks.Categories
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), serviceTimeout)
		defer cancel()
		if category == "" && ai != nil {
			if suggested, err := ai.Categorize(ctx, title, categories); err == nil {
				category = suggested
			}
		}
		task, err := svc.Create(ctx, model.Task{Title: title, Category: category, Priority: model.PriorityNormal})
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return TaskSavedMsg{Task: task}
	}
}

func (m Model) toggleTaskCmd(task model.Task) tea.Cmd {
	svc := m.services.Tasks
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), serviceTimeout)
		defer cancel()
		completed := !task.Completed
		patch := model.TaskPatch{Completed: &completed}
		if completed {
			now := nowUTC()
			patch.CompletedAt = &now
		}
		updated, err := svc.Update(ctx, task.ID, patch)
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return TaskSavedMsg{Task: updated}
	}
}

func (m Model) deleteTaskCmd(id string) tea.Cmd {
	svc := m.services.Tasks
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), serviceTimeout)
		defer cancel()
		if err := svc.Delete(ctx, id); err != nil {
			return AppErrorMsg{Err: err}
		}
		return TaskDeletedMsg{ID: id}
	}
}

func (m Model) setDueCmd(id string, due time.Time) tea.Cmd {
	svc := m.services.Tasks
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), serviceTimeout)
		defer cancel()
		updated, err := svc.Update(ctx, id, model.TaskPatch{DueDate: &due})
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return TaskSavedMsg{Task: updated}
	}
}

func (m Model) breakdownCmd(title string) tea.Cmd {
	ai := m.services.AI
	return func() tea.Msg {
		if ai == nil {
			return AppErrorMsg{Err: nil}
		}
		ctx, cancel := context.WithTimeout(context.Background(), serviceTimeout)
		defer cancel()
		plan, err := ai.Breakdown(ctx, title)
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return AIBreakdownMsg{Title: title, Plan: plan}
	}
}
