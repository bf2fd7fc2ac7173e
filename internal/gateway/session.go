// Package gateway presents a uniform CRUD contract per entity type
// regardless of backend reachability. Connectivity failures flip the
// session into sticky offline mode and are recovered from the local
// mirror; application-level failures propagate to the caller.
package gateway

import (
	"errors"
	"fmt"

	"github.com/smarttodo/smarttodo/internal/api"
	"github.com/smarttodo/smarttodo/internal/mirror"
)

var (
	// ErrNotFound reports an offline update or delete against an id the
	// mirror does not hold. The legacy behavior was a silent no-op; an
	// explicit error was chosen instead.
	ErrNotFound = errors.New("gateway: not found")

	// ErrLastCategory rejects deletion of the only remaining category.
	ErrLastCategory = errors.New("gateway: at least one category is required")
)

// Session carries the sticky per-session offline flag as explicit state.
// Once MarkOffline has been called the session stays offline for its
// entire lifetime; only a new session (process start) begins online again.
type Session struct {
	store   *mirror.Store
	offline bool

	// UnauthorizedHook runs when a remote call is rejected with a
	// 401-class error, after which the caller is expected to force
	// re-authentication.
	UnauthorizedHook func()
}

// NewSession initializes the session from the persisted offline flag.
func NewSession(store *mirror.Store) (*Session, error) {
	offline, err := store.OfflineMode()
	if err != nil {
		return nil, err
	}
	return &Session{store: store, offline: offline}, nil
}

func (s *Session) Offline() bool {
	return s.offline
}

// MarkOffline flips the session offline and persists the flag. The
// in-memory flag is authoritative even if persistence fails.
func (s *Session) MarkOffline() {
	if s.offline {
		return
	}
	s.offline = true
	_ = s.store.SetOfflineMode(true)
}

// Guard short-circuits remote attempts once offline, synthesizing the
// same unreachable condition a failed transport would produce. User
// endpoints bypass it.
func (s *Session) Guard() error {
	if s.offline {
		return fmt.Errorf("%w: offline mode enabled", api.ErrUnreachable)
	}
	return nil
}

// Observe inspects the outcome of a remote attempt: connectivity errors
// mark the session offline, authorization errors run the hook. Both are
// side effects; the error itself is left for the caller to classify.
func (s *Session) Observe(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, api.ErrUnreachable) {
		s.MarkOffline()
	}
	if errors.Is(err, api.ErrUnauthorized) && s.UnauthorizedHook != nil {
		s.UnauthorizedHook()
	}
}

// fallsBack reports whether a getAll error is recovered from the mirror.
func fallsBack(err error) bool {
	return errors.Is(err, api.ErrUnreachable) || errors.Is(err, api.ErrNotFound)
}
