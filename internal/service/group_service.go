package service

import (
	"context"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/pkg/apperr"
)

type GroupService interface {
	Create(ctx context.Context, title, slug, description string) (*model.Group, error)
	DeleteBySlug(ctx context.Context, slug string) error
}

type groupService struct {
	groupRepo repository.GroupRepository
}

func NewGroupService(groupRepo repository.GroupRepository) GroupService {
	return &groupService{groupRepo: groupRepo}
}

func (s *groupService) Create(ctx context.Context, title, slug, description string) (*model.Group, error) {
	if err := validateText("title", title); err != nil {
		return nil, err
	}
	if err := validateText("slug", slug); err != nil {
		return nil, err
	}
	if _, err := s.groupRepo.GetBySlug(ctx, slug); err == nil {
		return nil, &apperr.ValidationError{Field: "slug", Message: "already taken"}
	}
	group := &model.Group{Title: title, Slug: slug, Description: description}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// DeleteBySlug removes the group; its posts survive with a nulled group
// reference (repository contract).
func (s *groupService) DeleteBySlug(ctx context.Context, slug string) error {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return asNotFound(err, "group "+slug)
	}
	return s.groupRepo.Delete(ctx, group.ID)
}
