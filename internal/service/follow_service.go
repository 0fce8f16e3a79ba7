package service

import (
	"context"

	"quill/internal/repository"
)

type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowService(
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow creates the (actor, target) edge with get-or-create semantics.
// Following yourself or someone you already follow is a success no-op; an
// unknown target is NotFound.
func (s *FollowService) Follow(ctx context.Context, actorID uint, username string) error {
	target, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if target.ID == actorID {
		return nil
	}
	return s.followRepo.Create(ctx, actorID, target.ID)
}

// Unfollow removes the edge if present. A missing edge is a no-op, not an
// error.
func (s *FollowService) Unfollow(ctx context.Context, actorID uint, username string) error {
	target, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	return s.followRepo.Delete(ctx, actorID, target.ID)
}

// IsFollowing reports whether viewer follows the named user.
func (s *FollowService) IsFollowing(ctx context.Context, viewerID uint, username string) (bool, error) {
	target, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	return s.followRepo.Exists(ctx, viewerID, target.ID)
}
