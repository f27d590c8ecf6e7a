package service

import (
	"context"

	"github.com/donggunkwak/Brainwave/internal/models"
	"github.com/donggunkwak/Brainwave/internal/repository"
)

// LikeService provides like business logic.
type LikeService struct {
	likeRepo repository.LikeRepository
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

// NewLikeService returns a new LikeService.
func NewLikeService(likeRepo repository.LikeRepository, postRepo repository.PostRepository, userRepo repository.UserRepository) *LikeService {
	return &LikeService{likeRepo: likeRepo, postRepo: postRepo, userRepo: userRepo}
}

// LikePost records the user's like on the post. Liking a post twice is a
// conflict; the storage layer is the arbiter.
func (s *LikeService) LikePost(ctx context.Context, userID, postID uint) error {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return err
	}
	return s.likeRepo.Create(ctx, userID, postID)
}

// UnlikePost removes the user's like from the post.
func (s *LikeService) UnlikePost(ctx context.Context, userID, postID uint) error {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return err
	}
	return s.likeRepo.Delete(ctx, userID, postID)
}

// ListPostLikes returns the likes on a post, newest first.
func (s *LikeService) ListPostLikes(ctx context.Context, postID uint) ([]models.Like, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.likeRepo.ListByPost(ctx, postID)
}

// ListLikedPosts returns the posts the named user has liked, most recently
// liked first.
func (s *LikeService) ListLikedPosts(ctx context.Context, username string, limit, offset int) ([]*models.Post, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", 0)
	}
	return s.likeRepo.ListLikedPosts(ctx, user.ID, limit, offset)
}
