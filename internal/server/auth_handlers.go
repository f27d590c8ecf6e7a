package server

import (
	"github.com/donggunkwak/Brainwave/internal/models"
	"github.com/donggunkwak/Brainwave/internal/service"

	"github.com/gofiber/fiber/v2"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateUser registers a new account and logs it in, so the signup response
// already carries a live session cookie.
func (s *Server) CreateUser(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithAppError(c,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Register(c.UserContext(), service.RegisterInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	token, err := s.sessions.Issue(c.UserContext(), user.ID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	s.setSessionCookie(c, token)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"msg":  "User created",
		"user": presentUser(user),
	})
}

// Login verifies credentials and opens a session.
func (s *Server) Login(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithAppError(c,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Authenticate(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	token, err := s.sessions.Issue(c.UserContext(), user.ID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	s.setSessionCookie(c, token)

	return c.JSON(fiber.Map{
		"msg":  "Logged in",
		"user": presentUser(user),
	})
}

// Logout revokes the current session and clears the cookie.
func (s *Server) Logout(c *fiber.Ctx) error {
	if err := s.sessions.Destroy(c.UserContext(), c.Cookies(sessionCookie)); err != nil {
		return models.RespondWithAppError(c, err)
	}
	s.clearSessionCookie(c)

	return c.JSON(fiber.Map{
		"msg": "Logged out",
	})
}

// GetSession returns the user bound to the current session.
func (s *Server) GetSession(c *fiber.Ctx) error {
	user, err := s.userService.GetByID(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"user": presentUser(user),
	})
}
