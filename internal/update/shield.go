package update

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smarttodo/smarttodo/internal/focus"
)

func (m Model) handleShieldKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	session := m.Shield.Session
	if session == nil {
		// No active session: drop back to goal selection.
		if msg.String() == "esc" || msg.String() == m.Keys.Goals {
			m.CurrentView = ViewGoals
		}
		return m, nil
	}

	switch session.State() {
	case focus.StateConfirmingExit:
		switch msg.String() {
		case "y", "enter":
			session.ConfirmExit()
			return m.finishShield()
		case "n", "esc":
			// The tick chain kept running while confirming, so resuming
			// needs no new ticker.
			session.CancelExit()
			m.Status = StatusBar{Text: "back to it", IsError: false}
			return m, nil
		}
		return m, nil
	case focus.StateTerminated:
		return m.finishShield()
	}

	switch msg.String() {
	case " ":
		session.TogglePause()
		if session.State() == focus.StatePaused {
			m.Status = StatusBar{Text: "shield paused", IsError: false}
		} else {
			m.Status = StatusBar{Text: "shield resumed", IsError: false}
		}
		return m, nil
	case "esc":
		session.RequestExit()
		if session.State() == focus.StateTerminated {
			return m.finishShield()
		}
		m.Status = StatusBar{Text: "leave this session? y/n", IsError: false}
		return m, nil
	case "c":
		session.Complete()
		return m.finishShield()
	}
	return m, nil
}

func (m Model) onShieldTick() (tea.Model, tea.Cmd) {
	session := m.Shield.Session
	if session == nil || session.State() == focus.StateTerminated {
		return m, nil
	}
	// The timer keeps climbing past the goal target; the progress ring
	// clamps at 100 and completion stays an explicit user action.
	session.Tick()
	return m, shieldTickCmd()
}

// finishShield converts a terminated session into a goal update.
// Discarded sessions record nothing and return straight to goals.
func (m Model) finishShield() (tea.Model, tea.Cmd) {
	session := m.Shield.Session
	if session == nil {
		return m, nil
	}
	result, ok := session.Result()
	if !ok {
		return m, nil
	}
	if result.Discarded {
		m.Shield.Session = nil
		m.CurrentView = ViewGoals
		m.Status = StatusBar{Text: "session discarded", IsError: false}
		return m, nil
	}
	goalID := session.Goal().ID
	m.notify("Focus session complete", session.Goal().Name)
	return m, m.recordSessionCmd(goalID, result.Elapsed)
}

func shieldTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return ShieldTickMsg{} })
}
