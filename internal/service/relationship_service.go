package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/pkg/logger"
)

// RelationshipService 关系链服务: follow-edge writes plus the read-side
// relationship index used by profile and followed-feed views.
type RelationshipService interface {
	Follow(ctx context.Context, userID, authorID string) error
	Unfollow(ctx context.Context, userID, authorID string) error
	// FollowAuthor / UnfollowAuthor resolve the author by username first
	// and return NotFound when it is unknown.
	FollowAuthor(ctx context.Context, userID, username string) error
	UnfollowAuthor(ctx context.Context, userID, username string) error
	IsFollowing(ctx context.Context, viewerID, authorID string) (bool, error)
	FollowingIDs(ctx context.Context, userID string) ([]string, error)
}

type relationshipService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewRelationshipService(followRepo repository.FollowRepository, userRepo repository.UserRepository) RelationshipService {
	return &relationshipService{followRepo: followRepo, userRepo: userRepo}
}

// Follow creates the (user, author) edge. Self-follow is silently skipped:
// the edge is never created and the caller sees success. Duplicate follows
// are absorbed by the unique index (OnConflict DoNothing), so the call is
// idempotent.
func (s *relationshipService) Follow(ctx context.Context, userID, authorID string) error {
	if userID == authorID {
		logger.Debug("self-follow skipped", zap.String("user", userID))
		return nil
	}
	return s.followRepo.Create(ctx, userID, authorID)
}

func (s *relationshipService) FollowAuthor(ctx context.Context, userID, username string) error {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return asNotFound(err, "user "+username)
	}
	return s.Follow(ctx, userID, author.ID)
}

func (s *relationshipService) UnfollowAuthor(ctx context.Context, userID, username string) error {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return asNotFound(err, "user "+username)
	}
	return s.Unfollow(ctx, userID, author.ID)
}

// Unfollow deletes the edge; deleting a missing edge is a no-op.
func (s *relationshipService) Unfollow(ctx context.Context, userID, authorID string) error {
	return s.followRepo.Delete(ctx, userID, authorID)
}

// IsFollowing never touches storage for an anonymous viewer.
func (s *relationshipService) IsFollowing(ctx context.Context, viewerID, authorID string) (bool, error) {
	if viewerID == "" {
		return false, nil
	}
	return s.followRepo.Exists(ctx, viewerID, authorID)
}

func (s *relationshipService) FollowingIDs(ctx context.Context, userID string) ([]string, error) {
	return s.followRepo.ListAuthorIDs(ctx, userID)
}
