package update

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Login.Submitting {
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		m.Quitting = true
		return m, tea.Quit
	case "tab":
		m.advanceLoginField()
		return m, nil
	case "ctrl+r":
		m.Login.Registering = !m.Login.Registering
		m.Login.Field = LoginFieldEmail
		if m.Login.Registering {
			m.Login.Field = LoginFieldName
		}
		m.focusLoginField()
		return m, nil
	case "ctrl+g":
		m.Login.Submitting = true
		m.Status = StatusBar{Text: "continuing as guest", IsError: false}
		return m, m.guestCmd()
	case "enter":
		return m.submitLogin()
	}

	var cmd tea.Cmd
	switch m.Login.Field {
	case LoginFieldName:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case LoginFieldEmail:
		m.emailInput, cmd = m.emailInput.Update(msg)
	case LoginFieldPassword:
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) advanceLoginField() {
	switch m.Login.Field {
	case LoginFieldName:
		m.Login.Field = LoginFieldEmail
	case LoginFieldEmail:
		m.Login.Field = LoginFieldPassword
	case LoginFieldPassword:
		if m.Login.Registering {
			m.Login.Field = LoginFieldName
		} else {
			m.Login.Field = LoginFieldEmail
		}
	}
	m.focusLoginField()
}

func (m *Model) focusLoginField() {
	m.nameInput.Blur()
	m.emailInput.Blur()
	m.passwordInput.Blur()
	switch m.Login.Field {
	case LoginFieldName:
		m.nameInput.Focus()
	case LoginFieldEmail:
		m.emailInput.Focus()
	case LoginFieldPassword:
		m.passwordInput.Focus()
	}
}

func (m Model) submitLogin() (tea.Model, tea.Cmd) {
	email := strings.TrimSpace(m.emailInput.Value())
	password := m.passwordInput.Value()
	if email == "" || password == "" {
		m.Status = StatusBar{Text: "email and password are required", IsError: true}
		return m, nil
	}
	m.Login.Submitting = true
	m.Status = StatusBar{Text: "signing in", IsError: false}
	if m.Login.Registering {
		name := strings.TrimSpace(m.nameInput.Value())
		if name == "" {
			m.Login.Submitting = false
			m.Status = StatusBar{Text: "name is required", IsError: true}
			return m, nil
		}
		return m, m.registerCmd(name, email, password)
	}
	return m, m.loginCmd(email, password)
}

func (m Model) loginCmd(email, password string) tea.Cmd {
	svc := m.services.Users
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), serviceTimeout)
		defer cancel()
		cred, err := svc.Login(ctx, email, password)
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return LoggedInMsg{Credential: cred}
	}
}

func (m Model) registerCmd(name, email, password string) tea.Cmd {
	svc := m.services.Users
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), serviceTimeout)
		defer cancel()
		cred, err := svc.Register(ctx, name, email, password)
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return LoggedInMsg{Credential: cred}
	}
}

func (m Model) guestCmd() tea.Cmd {
	svc := m.services.Users
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), serviceTimeout)
		defer cancel()
		cred, err := svc.Guest(ctx)
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return LoggedInMsg{Credential: cred}
	}
}
