package event

import (
	"context"
	"fmt"
	"time"
)

// Service handles event registry business logic
type Service struct {
	repo Repository
}

// NewService creates event service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetBySlug resolves a slug to an event
func (s *Service) GetBySlug(ctx context.Context, slug string) (*Event, error) {
	e, err := s.repo.GetByID(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to load event: %w", err)
	}
	if e == nil {
		return nil, ErrEventNotFound
	}
	return e, nil
}

// List returns all events in registry enumeration order
func (s *Service) List(ctx context.Context) ([]*Event, error) {
	return s.repo.List(ctx)
}

// Create creates an event from an admin request
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*Event, error) {
	now := time.Now().UTC()
	e := &Event{
		ID:            req.ID,
		Title:         req.Title,
		Description:   req.Description,
		Date:          req.Date,
		CoverImageURL: req.CoverImageURL,
		TemplateID:    req.TemplateID,
		FolderName:    req.FolderName,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Update applies an admin update to an existing event
func (s *Service) Update(ctx context.Context, id string, req *UpdateRequest) (*Event, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load event: %w", err)
	}
	if existing == nil {
		return nil, ErrEventNotFound
	}

	existing.Title = req.Title
	existing.Description = req.Description
	existing.Date = req.Date
	existing.CoverImageURL = req.CoverImageURL
	existing.TemplateID = req.TemplateID
	existing.FolderName = req.FolderName
	existing.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}
