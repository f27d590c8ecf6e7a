package server

import (
	"github.com/donggunkwak/Brainwave/internal/models"
	"github.com/donggunkwak/Brainwave/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetUsers returns a page of users.
func (s *Server) GetUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	users, err := s.userService.List(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"users": presentUsers(users),
	})
}

// GetUserProfile returns a single user's public profile.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetByUsername(c.UserContext(), c.Params("username"))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"user": presentUser(user),
	})
}

// UpdateUsername renames the authenticated user's account.
func (s *Server) UpdateUsername(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithAppError(c,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.ChangeUsername(c.UserContext(), service.ChangeUsernameInput{
		UserID:   currentUserID(c),
		Username: req.Username,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"msg":  "Username updated",
		"user": presentUser(user),
	})
}

// UpdatePassword replaces the authenticated user's password.
func (s *Server) UpdatePassword(c *fiber.Ctx) error {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithAppError(c,
			models.NewValidationError("Invalid request body"))
	}

	err := s.userService.ChangePassword(c.UserContext(), service.ChangePasswordInput{
		UserID:   currentUserID(c),
		Password: req.Password,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"msg": "Password updated",
	})
}

// DeleteAccount removes the authenticated user's account and every session
// attached to it, then clears the cookie.
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	if err := s.userService.DeleteAccount(c.UserContext(), currentUserID(c)); err != nil {
		return models.RespondWithAppError(c, err)
	}
	s.clearSessionCookie(c)

	return c.JSON(fiber.Map{
		"msg": "Account deleted",
	})
}

// GetUserLikes returns the posts the named user has liked.
func (s *Server) GetUserLikes(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	posts, err := s.likeService.ListLikedPosts(c.UserContext(), c.Params("username"), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"posts": presentPosts(posts),
	})
}
