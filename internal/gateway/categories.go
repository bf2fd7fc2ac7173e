package gateway

import (
	"context"

	"github.com/smarttodo/smarttodo/internal/api"
	"github.com/smarttodo/smarttodo/internal/mirror"
	"github.com/smarttodo/smarttodo/internal/model"
)

// CategoryService manages the locally persisted category collection and
// mirrors it to the backend via the sync endpoint. Unlike tasks and
// goals, the remote category calls have no mirror substitution: remote
// errors propagate to the caller.
type CategoryService struct {
	api     *api.Client
	store   *mirror.Store
	session *Session
}

func NewCategoryService(client *api.Client, store *mirror.Store, session *Session) *CategoryService {
	return &CategoryService{api: client, store: store, session: session}
}

// List returns the local collection, seeding the defaults on first use.
func (s *CategoryService) List() ([]model.Category, error) {
	categories, ok, err := s.store.LoadCategories()
	if err != nil {
		return nil, err
	}
	if !ok {
		categories = model.DefaultCategories()
		if err := s.store.SaveCategories(categories); err != nil {
			return nil, err
		}
	}
	return categories, nil
}

func (s *CategoryService) Add(c model.Category) ([]model.Category, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	categories, err := s.List()
	if err != nil {
		return nil, err
	}
	categories = append(categories, c)
	if err := s.store.SaveCategories(categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Remove deletes a category. The collection never drops below one entry;
// tasks referencing the removed category keep their dangling reference.
func (s *CategoryService) Remove(id string) ([]model.Category, error) {
	categories, err := s.List()
	if err != nil {
		return nil, err
	}
	if len(categories) <= 1 {
		return nil, ErrLastCategory
	}
	kept := categories[:0]
	removed := false
	for _, c := range categories {
		if c.ID == id {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	if !removed {
		return nil, ErrNotFound
	}
	if err := s.store.SaveCategories(kept); err != nil {
		return nil, err
	}
	return kept, nil
}

// Refresh pulls the remote collection and replaces the local one.
func (s *CategoryService) Refresh(ctx context.Context) ([]model.Category, error) {
	if err := s.session.Guard(); err != nil {
		return nil, err
	}
	categories, err := s.api.ListCategories(ctx)
	s.session.Observe(err)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveCategories(categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Sync pushes the local collection to the backend.
func (s *CategoryService) Sync(ctx context.Context) error {
	categories, err := s.List()
	if err != nil {
		return err
	}
	if err := s.session.Guard(); err != nil {
		return err
	}
	err = s.api.SyncCategories(ctx, categories)
	s.session.Observe(err)
	return err
}
