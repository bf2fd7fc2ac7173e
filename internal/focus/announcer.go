package focus

import (
	"os/exec"
	"runtime"
)

// Announcer speaks session events aloud. Implementations must not
// block the caller for long; speech failures are never surfaced.
type Announcer interface {
	Announce(text string)
}

// NoopAnnouncer silences all announcements.
type NoopAnnouncer struct{}

func (NoopAnnouncer) Announce(string) {}

// ExecAnnouncer shells out to the platform text-to-speech command.
type ExecAnnouncer struct{}

func (ExecAnnouncer) Announce(text string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("say", text)
	case "linux":
		cmd = exec.Command("espeak", text)
	default:
		return
	}
	// Speech is best effort; a missing binary should not break the timer.
	go func() { _ = cmd.Run() }()
}
