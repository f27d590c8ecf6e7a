package service

import (
	"context"

	"github.com/donggunkwak/Brainwave/internal/cache"
	"github.com/donggunkwak/Brainwave/internal/models"
	"github.com/donggunkwak/Brainwave/internal/repository"
)

const maxPostLen = 10000

// PostService provides post business logic.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

type CreatePostInput struct {
	AuthorID uint
	Content  string
	Options  *models.PostOptions
}

type UpdatePostInput struct {
	UserID  uint
	PostID  uint
	Content string
	Options *models.PostOptions
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxPostLen {
		return nil, models.NewValidationError("Post too long (max 10000 characters)")
	}

	post := &models.Post{
		Content:  in.Content,
		AuthorID: in.AuthorID,
		Options:  in.Options,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// ListPosts returns a page of posts, optionally filtered to a single author's
// username. An unknown author is a not found error rather than an empty page.
func (s *PostService) ListPosts(ctx context.Context, author string, limit, offset int) ([]*models.Post, error) {
	if author == "" {
		// The unfiltered first page is the hot path; cache it briefly.
		if offset == 0 && limit <= 20 {
			var posts []*models.Post
			err := cache.Aside(ctx, cache.PostsListKey, &posts, cache.ListTTL, func() error {
				var fetchErr error
				posts, fetchErr = s.postRepo.List(ctx, limit, offset)
				return fetchErr
			})
			if err != nil {
				return nil, err
			}
			return posts, nil
		}
		return s.postRepo.List(ctx, limit, offset)
	}

	user, err := s.userRepo.GetByUsername(ctx, author)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", 0)
	}
	return s.postRepo.GetByAuthorID(ctx, user.ID, limit, offset)
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only update your own posts")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxPostLen {
		return nil, models.NewValidationError("Post too long (max 10000 characters)")
	}

	post.Content = in.Content
	if in.Options != nil {
		post.Options = in.Options
	}
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only delete your own posts")
	}

	if err := s.postRepo.Delete(ctx, in.PostID); err != nil {
		return nil, err
	}
	return post, nil
}
