package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/smarttodo/smarttodo/internal/api"
	"github.com/smarttodo/smarttodo/internal/mirror"
	"github.com/smarttodo/smarttodo/internal/model"
)

type GoalService struct {
	api     *api.Client
	store   *mirror.Store
	session *Session
	now     func() time.Time
}

func NewGoalService(client *api.Client, store *mirror.Store, session *Session, now func() time.Time) *GoalService {
	if now == nil {
		now = time.Now
	}
	return &GoalService{api: client, store: store, session: session, now: now}
}

// GetAll falls back to the mirror like tasks do, but goals seed empty.
func (s *GoalService) GetAll(ctx context.Context) ([]model.Goal, error) {
	goals, err := s.listRemote(ctx)
	if err == nil {
		return goals, nil
	}
	if !fallsBack(err) {
		return nil, err
	}
	stored, _, loadErr := s.store.LoadGoals()
	if loadErr != nil {
		return nil, loadErr
	}
	if stored == nil {
		stored = []model.Goal{}
	}
	return stored, nil
}

func (s *GoalService) Create(ctx context.Context, in model.Goal) (model.Goal, error) {
	if err := in.Validate(); err != nil {
		return model.Goal{}, err
	}

	if err := s.session.Guard(); err == nil {
		created, remoteErr := s.api.CreateGoal(ctx, in)
		s.session.Observe(remoteErr)
		if remoteErr == nil {
			return created, nil
		}
		if !errors.Is(remoteErr, api.ErrUnreachable) {
			return model.Goal{}, remoteErr
		}
	}

	now := s.now()
	in.ID = model.LocalID(now)
	in.CreatedAt = now
	in.Status = model.GoalNotStarted
	in.TimeSpent = 0
	in.Sessions = []model.GoalSession{}

	goals, _, err := s.store.LoadGoals()
	if err != nil {
		return model.Goal{}, err
	}
	goals = append([]model.Goal{in}, goals...)
	if err := s.store.SaveGoals(goals); err != nil {
		return model.Goal{}, err
	}
	return in, nil
}

func (s *GoalService) Update(ctx context.Context, id string, patch model.GoalPatch) (model.Goal, error) {
	if err := s.session.Guard(); err == nil {
		updated, remoteErr := s.api.UpdateGoal(ctx, id, patch)
		s.session.Observe(remoteErr)
		if remoteErr == nil {
			return updated, nil
		}
		if !errors.Is(remoteErr, api.ErrUnreachable) {
			return model.Goal{}, remoteErr
		}
	}

	goals, _, err := s.store.LoadGoals()
	if err != nil {
		return model.Goal{}, err
	}
	for i := range goals {
		if goals[i].ID == id {
			patch.Apply(&goals[i])
			if err := s.store.SaveGoals(goals); err != nil {
				return model.Goal{}, err
			}
			return goals[i], nil
		}
	}
	return model.Goal{}, ErrNotFound
}

func (s *GoalService) Delete(ctx context.Context, id string) error {
	if err := s.session.Guard(); err == nil {
		remoteErr := s.api.DeleteGoal(ctx, id)
		s.session.Observe(remoteErr)
		if remoteErr == nil {
			return nil
		}
		if !errors.Is(remoteErr, api.ErrUnreachable) {
			return remoteErr
		}
	}

	goals, _, err := s.store.LoadGoals()
	if err != nil {
		return err
	}
	kept := goals[:0]
	removed := false
	for _, g := range goals {
		if g.ID == id {
			removed = true
			continue
		}
		kept = append(kept, g)
	}
	if !removed {
		return ErrNotFound
	}
	return s.store.SaveGoals(kept)
}

// AddSession records a completed focus run against a goal, accumulating
// TimeSpent and re-deriving the goal status.
func (s *GoalService) AddSession(ctx context.Context, id string, durationSec int) (model.Goal, error) {
	if err := s.session.Guard(); err == nil {
		updated, remoteErr := s.api.AddGoalSession(ctx, id, durationSec)
		s.session.Observe(remoteErr)
		if remoteErr == nil {
			return updated, nil
		}
		if !errors.Is(remoteErr, api.ErrUnreachable) {
			return model.Goal{}, remoteErr
		}
	}

	goals, _, err := s.store.LoadGoals()
	if err != nil {
		return model.Goal{}, err
	}
	for i := range goals {
		if goals[i].ID == id {
			goals[i].ApplySession(durationSec, s.now())
			if err := s.store.SaveGoals(goals); err != nil {
				return model.Goal{}, err
			}
			return goals[i], nil
		}
	}
	return model.Goal{}, ErrNotFound
}

func (s *GoalService) listRemote(ctx context.Context) ([]model.Goal, error) {
	if err := s.session.Guard(); err != nil {
		return nil, err
	}
	goals, err := s.api.ListGoals(ctx)
	s.session.Observe(err)
	return goals, err
}
