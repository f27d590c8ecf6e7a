package server

import (
	"github.com/donggunkwak/Brainwave/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetPostLikes returns who liked a post.
func (s *Server) GetPostLikes(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	likes, err := s.likeService.ListPostLikes(c.UserContext(), postID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"likes": presentLikes(likes),
		"count": len(likes),
	})
}

// LikePost records the authenticated user's like on a post.
func (s *Server) LikePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	if err := s.likeService.LikePost(c.UserContext(), currentUserID(c), postID); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"msg": "Post liked",
	})
}

// UnlikePost removes the authenticated user's like from a post.
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	if err := s.likeService.UnlikePost(c.UserContext(), currentUserID(c), postID); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"msg": "Post unliked",
	})
}
