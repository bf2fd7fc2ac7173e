package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/smarttodo/smarttodo/internal/api"
	"github.com/smarttodo/smarttodo/internal/auth"
	"github.com/smarttodo/smarttodo/internal/model"
)

// UserService wraps the identity endpoints. These are always attempted
// live, even in sticky offline mode, so a recovered backend can still
// authenticate the next session.
type UserService struct {
	api     *api.Client
	creds   *auth.Store
	session *Session
	now     func() time.Time
}

func NewUserService(client *api.Client, creds *auth.Store, session *Session, now func() time.Time) *UserService {
	if now == nil {
		now = time.Now
	}
	return &UserService{api: client, creds: creds, session: session, now: now}
}

func (s *UserService) Login(ctx context.Context, email, password string) (model.Credential, error) {
	cred, err := s.api.Login(ctx, email, password)
	s.session.Observe(err)
	if err != nil {
		return model.Credential{}, err
	}
	if err := s.creds.Save(cred); err != nil {
		return model.Credential{}, err
	}
	return cred, nil
}

func (s *UserService) Register(ctx context.Context, name, email, password string) (model.Credential, error) {
	cred, err := s.api.Register(ctx, name, email, password)
	s.session.Observe(err)
	if err != nil {
		return model.Credential{}, err
	}
	if err := s.creds.Save(cred); err != nil {
		return model.Credential{}, err
	}
	return cred, nil
}

// Guest logs in anonymously, degrading to a locally synthesized guest
// credential when the backend is unreachable.
func (s *UserService) Guest(ctx context.Context) (model.Credential, error) {
	cred, err := s.api.Guest(ctx)
	s.session.Observe(err)
	if err != nil {
		if !errors.Is(err, api.ErrUnreachable) {
			return model.Credential{}, err
		}
		cred = model.Credential{
			ID:    "guest_" + model.LocalID(s.now()),
			Name:  "Guest",
			Email: "guest@local.test",
			Token: "mock_token",
			Guest: true,
		}
	}
	if err := s.creds.Save(cred); err != nil {
		return model.Credential{}, err
	}
	return cred, nil
}

// UpdateProfile edits the stored profile, merging locally when offline.
func (s *UserService) UpdateProfile(ctx context.Context, patch model.ProfilePatch) (model.Credential, error) {
	cred, err := s.api.UpdateProfile(ctx, patch)
	s.session.Observe(err)
	if err == nil {
		if err := s.creds.Save(cred); err != nil {
			return model.Credential{}, err
		}
		return cred, nil
	}
	if !errors.Is(err, api.ErrUnreachable) {
		return model.Credential{}, err
	}

	current, loadErr := s.creds.Load()
	if loadErr != nil {
		return model.Credential{}, loadErr
	}
	if current == nil {
		return model.Credential{}, ErrNotFound
	}
	patch.Apply(current)
	if err := s.creds.Save(*current); err != nil {
		return model.Credential{}, err
	}
	return *current, nil
}
