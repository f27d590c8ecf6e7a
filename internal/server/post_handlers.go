package server

import (
	"github.com/donggunkwak/Brainwave/internal/models"
	"github.com/donggunkwak/Brainwave/internal/service"

	"github.com/gofiber/fiber/v2"
)

type postRequest struct {
	Content string              `json:"content"`
	Options *models.PostOptions `json:"options"`
}

// GetPosts returns a page of posts, newest first, optionally filtered by the
// author query parameter (a username).
func (s *Server) GetPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	posts, err := s.postService.ListPosts(c.UserContext(), c.Query("author"), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"posts": presentPosts(posts),
	})
}

// GetPost returns a single post with its comments.
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), postID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"post": presentPost(post),
	})
}

// CreatePost publishes a new post authored by the authenticated user.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithAppError(c,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		AuthorID: currentUserID(c),
		Content:  req.Content,
		Options:  req.Options,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"msg":  "Post created",
		"post": presentPost(post),
	})
}

// UpdatePost edits a post owned by the authenticated user.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithAppError(c,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.UserContext(), service.UpdatePostInput{
		UserID:  currentUserID(c),
		PostID:  postID,
		Content: req.Content,
		Options: req.Options,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"msg":  "Post updated",
		"post": presentPost(post),
	})
}

// DeletePost removes a post owned by the authenticated user.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	_, err = s.postService.DeletePost(c.UserContext(), service.DeletePostInput{
		UserID: currentUserID(c),
		PostID: postID,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"msg": "Post deleted",
	})
}
