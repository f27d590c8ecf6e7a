package server

import (
	"github.com/donggunkwak/Brainwave/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetFriends returns the authenticated user's friends.
func (s *Server) GetFriends(c *fiber.Ctx) error {
	friends, err := s.friendService.ListFriends(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"friends": presentUsers(friends),
	})
}

// RemoveFriend dissolves an accepted friendship with the named user.
func (s *Server) RemoveFriend(c *fiber.Ctx) error {
	friend := c.Params("friend")

	if err := s.friendService.RemoveFriend(c.UserContext(), currentUserID(c), friend); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"msg": "Friend removed",
	})
}

// GetFriendRequests returns the authenticated user's pending requests, both
// incoming and outgoing.
func (s *Server) GetFriendRequests(c *fiber.Ctx) error {
	incoming, outgoing, err := s.friendService.ListRequests(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"incoming": presentFriendRequests(incoming),
		"outgoing": presentFriendRequests(outgoing),
	})
}

// SendFriendRequest sends a friend request to the named user.
func (s *Server) SendFriendRequest(c *fiber.Ctx) error {
	request, err := s.friendService.SendRequest(c.UserContext(), currentUserID(c), c.Params("to"))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"msg":     "Friend request sent",
		"request": presentFriendRequest(request),
	})
}

// CancelFriendRequest withdraws the authenticated user's own outgoing request.
func (s *Server) CancelFriendRequest(c *fiber.Ctx) error {
	if err := s.friendService.CancelRequest(c.UserContext(), currentUserID(c), c.Params("to")); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"msg": "Friend request cancelled",
	})
}

// AcceptFriendRequest accepts an incoming request from the named user.
func (s *Server) AcceptFriendRequest(c *fiber.Ctx) error {
	friendship, err := s.friendService.AcceptRequest(c.UserContext(), currentUserID(c), c.Params("from"))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"msg":        "Friend request accepted",
		"friendship": presentFriendRequest(friendship),
	})
}

// RejectFriendRequest declines an incoming request from the named user.
func (s *Server) RejectFriendRequest(c *fiber.Ctx) error {
	if err := s.friendService.RejectRequest(c.UserContext(), currentUserID(c), c.Params("from")); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"msg": "Friend request rejected",
	})
}
