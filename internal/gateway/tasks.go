package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/smarttodo/smarttodo/internal/api"
	"github.com/smarttodo/smarttodo/internal/mirror"
	"github.com/smarttodo/smarttodo/internal/model"
)

type TaskService struct {
	api     *api.Client
	store   *mirror.Store
	session *Session
	now     func() time.Time
}

func NewTaskService(client *api.Client, store *mirror.Store, session *Session, now func() time.Time) *TaskService {
	if now == nil {
		now = time.Now
	}
	return &TaskService{api: client, store: store, session: session, now: now}
}

// GetAll returns the remote task list, falling back to the mirror when the
// backend is unreachable or the route is missing. The first fallback read
// seeds a welcome collection.
func (s *TaskService) GetAll(ctx context.Context) ([]model.Task, error) {
	tasks, err := s.listRemote(ctx)
	if err == nil {
		return tasks, nil
	}
	if !fallsBack(err) {
		return nil, err
	}
	return s.loadOrSeed()
}

func (s *TaskService) Create(ctx context.Context, in model.Task) (model.Task, error) {
	if err := in.Validate(); err != nil {
		return model.Task{}, err
	}

	if err := s.session.Guard(); err == nil {
		created, remoteErr := s.api.CreateTask(ctx, in)
		s.session.Observe(remoteErr)
		if remoteErr == nil {
			return created, nil
		}
		if !errors.Is(remoteErr, api.ErrUnreachable) {
			return model.Task{}, remoteErr
		}
	}

	now := s.now()
	in.ID = model.LocalID(now)
	in.CreatedAt = now

	tasks, err := s.loadOrSeed()
	if err != nil {
		return model.Task{}, err
	}
	tasks = append([]model.Task{in}, tasks...)
	if err := s.store.SaveTasks(tasks); err != nil {
		return model.Task{}, err
	}
	return in, nil
}

func (s *TaskService) Update(ctx context.Context, id string, patch model.TaskPatch) (model.Task, error) {
	if err := s.session.Guard(); err == nil {
		updated, remoteErr := s.api.UpdateTask(ctx, id, patch)
		s.session.Observe(remoteErr)
		if remoteErr == nil {
			return updated, nil
		}
		if !errors.Is(remoteErr, api.ErrUnreachable) {
			return model.Task{}, remoteErr
		}
	}

	tasks, err := s.loadOrSeed()
	if err != nil {
		return model.Task{}, err
	}
	for i := range tasks {
		if tasks[i].ID == id {
			patch.Apply(&tasks[i])
			if err := s.store.SaveTasks(tasks); err != nil {
				return model.Task{}, err
			}
			return tasks[i], nil
		}
	}
	return model.Task{}, ErrNotFound
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	if err := s.session.Guard(); err == nil {
		remoteErr := s.api.DeleteTask(ctx, id)
		s.session.Observe(remoteErr)
		if remoteErr == nil {
			return nil
		}
		if !errors.Is(remoteErr, api.ErrUnreachable) {
			return remoteErr
		}
	}

	tasks, err := s.loadOrSeed()
	if err != nil {
		return err
	}
	kept := tasks[:0]
	removed := false
	for _, t := range tasks {
		if t.ID == id {
			removed = true
			continue
		}
		kept = append(kept, t)
	}
	if !removed {
		return ErrNotFound
	}
	return s.store.SaveTasks(kept)
}

func (s *TaskService) listRemote(ctx context.Context) ([]model.Task, error) {
	if err := s.session.Guard(); err != nil {
		return nil, err
	}
	tasks, err := s.api.ListTasks(ctx)
	s.session.Observe(err)
	return tasks, err
}

func (s *TaskService) loadOrSeed() ([]model.Task, error) {
	tasks, ok, err := s.store.LoadTasks()
	if err != nil {
		return nil, err
	}
	if ok {
		return tasks, nil
	}
	tasks = model.SeedTasks(s.now())
	if err := s.store.SaveTasks(tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}
