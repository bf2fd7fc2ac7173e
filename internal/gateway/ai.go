package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/smarttodo/smarttodo/internal/api"
	"github.com/smarttodo/smarttodo/internal/model"
)

// AIService wraps the AI helper endpoints. Both degrade to fixed local
// stubs when the backend is unreachable.
type AIService struct {
	api     *api.Client
	session *Session
}

func NewAIService(client *api.Client, session *Session) *AIService {
	return &AIService{api: client, session: session}
}

// Categorize suggests a category label for a title. Offline it returns
// the first known category, or "General" when none exist.
func (s *AIService) Categorize(ctx context.Context, title string, categories []model.Category) (string, error) {
	labels := make([]string, 0, len(categories))
	for _, c := range categories {
		labels = append(labels, c.Label)
	}

	if err := s.session.Guard(); err == nil {
		label, remoteErr := s.api.Categorize(ctx, title, labels)
		s.session.Observe(remoteErr)
		if remoteErr == nil {
			return label, nil
		}
		if !errors.Is(remoteErr, api.ErrUnreachable) {
			return "", remoteErr
		}
	}

	if len(labels) > 0 {
		return labels[0], nil
	}
	return "General", nil
}

// Breakdown expands a title into steps. Offline it returns a fixed
// four-step outline.
func (s *AIService) Breakdown(ctx context.Context, title string) (string, error) {
	if err := s.session.Guard(); err == nil {
		text, remoteErr := s.api.Breakdown(ctx, title)
		s.session.Observe(remoteErr)
		if remoteErr == nil {
			return text, nil
		}
		if !errors.Is(remoteErr, api.ErrUnreachable) {
			return "", remoteErr
		}
	}

	return fmt.Sprintf("1. Analyze: %s\n2. Organize resources\n3. Execute primary steps\n4. Review and finalize", title), nil
}
