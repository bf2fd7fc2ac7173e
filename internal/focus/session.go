// Package focus implements the Shield Mode countdown state machine: a
// single timed run against one goal, with pause/resume, an exit
// confirmation gate and one-time milestone announcements.
package focus

import (
	"fmt"

	"github.com/smarttodo/smarttodo/internal/model"
)

type State string

const (
	StateRunning        State = "running"
	StatePaused         State = "paused"
	StateConfirmingExit State = "confirming-exit"
	StateTerminated     State = "terminated"
)

// Exits within this many seconds discard the session without recording.
const discardThresholdSec = 60

var milestoneMinutes = []int{15, 30, 45, 60}

// Result is what a terminated session reports. Discarded sessions record
// nothing; otherwise the caller feeds Elapsed into the goal update path.
type Result struct {
	Elapsed   int
	Discarded bool
}

// Session is a single Shield Mode run. It has no internal clock: Tick is
// driven externally once per second of wall time while the UI is up,
// which keeps every transition deterministic under test.
type Session struct {
	goal      model.Goal
	userName  string
	state     State
	elapsed   int
	announced map[int]bool
	announcer Announcer
	result    *Result
}

// New starts a session in the running state and announces the start.
func New(goal model.Goal, userName string, announcer Announcer) *Session {
	if announcer == nil {
		announcer = NoopAnnouncer{}
	}
	s := &Session{
		goal:      goal,
		userName:  userName,
		state:     StateRunning,
		announced: make(map[int]bool),
		announcer: announcer,
	}
	announcer.Announce(fmt.Sprintf("%s, your %s session has started. Stay focused!", userName, goal.Name))
	return s
}

func (s *Session) State() State     { return s.state }
func (s *Session) Elapsed() int     { return s.elapsed }
func (s *Session) Goal() model.Goal { return s.goal }

// Result reports the terminal outcome; ok is false until terminated.
func (s *Session) Result() (Result, bool) {
	if s.result == nil {
		return Result{}, false
	}
	return *s.result, true
}

// Tick advances elapsed time by one second. Only the running state
// counts; paused and confirming-exit freeze the clock, terminated is
// absorbing.
func (s *Session) Tick() {
	if s.state != StateRunning {
		return
	}
	s.elapsed++
	s.announceMilestones()
}

func (s *Session) Pause() {
	if s.state == StateRunning {
		s.state = StatePaused
	}
}

func (s *Session) Resume() {
	if s.state == StatePaused {
		s.state = StateRunning
	}
}

// TogglePause flips between running and paused.
func (s *Session) TogglePause() {
	switch s.state {
	case StateRunning:
		s.state = StatePaused
	case StatePaused:
		s.state = StateRunning
	}
}

// RequestExit leaves immediately when almost nothing has elapsed,
// discarding the run; otherwise it asks for confirmation first.
func (s *Session) RequestExit() {
	switch s.state {
	case StateRunning, StatePaused:
		if s.elapsed <= discardThresholdSec {
			s.state = StateTerminated
			s.result = &Result{Elapsed: s.elapsed, Discarded: true}
			return
		}
		s.state = StateConfirmingExit
	}
}

// CancelExit returns to counting as if uninterrupted.
func (s *Session) CancelExit() {
	if s.state == StateConfirmingExit {
		s.state = StateRunning
	}
}

// ConfirmExit saves the session through the same path as Complete.
func (s *Session) ConfirmExit() {
	if s.state == StateConfirmingExit {
		s.terminate()
	}
}

// Complete ends the session and records elapsed time, whether or not the
// goal duration was reached.
func (s *Session) Complete() {
	switch s.state {
	case StateRunning, StatePaused, StateConfirmingExit:
		s.terminate()
	}
}

func (s *Session) terminate() {
	s.state = StateTerminated
	s.result = &Result{Elapsed: s.elapsed}
	s.announcer.Announce(fmt.Sprintf("Great work %s! You focused on %s for %s. Take a short rest.",
		s.userName, s.goal.Name, spokenDuration(s.elapsed)))
}

// Progress is the completion percent against the goal duration, clamped
// to [0, 100]. It decorates the ring only and never gates Complete.
func (s *Session) Progress() float64 {
	total := s.goal.TotalTime * 3600
	if total <= 0 {
		return 0
	}
	pct := float64(s.elapsed) / total * 100
	if pct > 100 {
		return 100
	}
	return pct
}

func (s *Session) announceMilestones() {
	minutes := s.elapsed / 60
	for _, mark := range milestoneMinutes {
		if minutes == mark && !s.announced[mark] {
			s.announced[mark] = true
			s.announcer.Announce(fmt.Sprintf("You've been focused for %d minutes. Keep going!", mark))
		}
	}
}

// FormatElapsed renders elapsed time as hh:mm:ss.
func (s *Session) FormatElapsed() string {
	h := s.elapsed / 3600
	m := (s.elapsed % 3600) / 60
	sec := s.elapsed % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, sec)
}

func spokenDuration(totalSec int) string {
	hours := totalSec / 3600
	minutes := (totalSec % 3600) / 60
	if hours > 0 {
		return fmt.Sprintf("%d hour%s and %d minute%s", hours, plural(hours), minutes, plural(minutes))
	}
	return fmt.Sprintf("%d minute%s", minutes, plural(minutes))
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
