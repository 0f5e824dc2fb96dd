package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/kodomo-labs/kodomo/internal/domain"
)

// ChildService handles child profile management and ownership checks.
type ChildService struct {
	children domain.ChildRepository
}

// NewChildService creates a new ChildService.
func NewChildService(children domain.ChildRepository) *ChildService {
	return &ChildService{children: children}
}

// Create adds a child profile under the given parent.
func (s *ChildService) Create(ctx context.Context, parentID int64, name string) (*domain.Child, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if len([]rune(name)) > 50 {
		return nil, fmt.Errorf("%w: name must be at most 50 characters", domain.ErrInvalidInput)
	}

	child := &domain.Child{ParentID: parentID, Name: name}
	if err := s.children.Create(ctx, child); err != nil {
		return nil, fmt.Errorf("create child: %w", err)
	}
	return child, nil
}

// ListByParent returns all children of the given parent.
func (s *ChildService) ListByParent(ctx context.Context, parentID int64) ([]domain.Child, error) {
	return s.children.ListByParent(ctx, parentID)
}

// GetOwned loads a child and verifies the caller is its parent.
// Ownership failures surface as ErrNotFound so child IDs are not
// enumerable across accounts.
func (s *ChildService) GetOwned(ctx context.Context, parentID, childID int64) (*domain.Child, error) {
	child, err := s.children.GetByID(ctx, childID)
	if err != nil {
		return nil, err
	}
	if child.ParentID != parentID {
		return nil, domain.ErrNotFound
	}
	return child, nil
}

// Delete removes a child profile after an ownership check.
func (s *ChildService) Delete(ctx context.Context, parentID, childID int64) error {
	if _, err := s.GetOwned(ctx, parentID, childID); err != nil {
		return err
	}
	return s.children.Delete(ctx, childID)
}
