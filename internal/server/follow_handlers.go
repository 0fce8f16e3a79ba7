package server

import (
	"github.com/gofiber/fiber/v2"
)

// FollowUser handles POST /api/users/:username/follow
func (s *Server) FollowUser(c *fiber.Ctx) error {
	if err := s.followService.Follow(c.Context(), currentUserID(c), c.Params("username")); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UnfollowUser handles DELETE /api/users/:username/follow
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	if err := s.followService.Unfollow(c.Context(), currentUserID(c), c.Params("username")); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
