package service

import (
	"context"
	"testing"

	"github.com/donggunkwak/Brainwave/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// likeRepoStub is a stub for repository.LikeRepository.
type likeRepoStub struct {
	createFn         func(context.Context, uint, uint) error
	deleteFn         func(context.Context, uint, uint) error
	isLikedFn        func(context.Context, uint, uint) (bool, error)
	countByPostFn    func(context.Context, uint) (int64, error)
	listByPostFn     func(context.Context, uint) ([]models.Like, error)
	listLikedPostsFn func(context.Context, uint, int, int) ([]*models.Post, error)
}

func (s *likeRepoStub) Create(ctx context.Context, userID, postID uint) error {
	return s.createFn(ctx, userID, postID)
}
func (s *likeRepoStub) Delete(ctx context.Context, userID, postID uint) error {
	return s.deleteFn(ctx, userID, postID)
}
func (s *likeRepoStub) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, postID)
}
func (s *likeRepoStub) CountByPost(ctx context.Context, postID uint) (int64, error) {
	return s.countByPostFn(ctx, postID)
}
func (s *likeRepoStub) ListByPost(ctx context.Context, postID uint) ([]models.Like, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *likeRepoStub) ListLikedPosts(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	return s.listLikedPostsFn(ctx, userID, limit, offset)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		createFn:      func(_ context.Context, _, _ uint) error { return nil },
		deleteFn:      func(_ context.Context, _, _ uint) error { return nil },
		isLikedFn:     func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		countByPostFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		listByPostFn:  func(_ context.Context, _ uint) ([]models.Like, error) { return nil, nil },
		listLikedPostsFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Post, error) {
			return nil, nil
		},
	}
}

func TestLikeService_LikePost(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("missing post is not found", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			return nil, models.NewNotFoundError("Post", id)
		}
		var created bool
		likeRepo := noopLikeRepo()
		likeRepo.createFn = func(_ context.Context, _, _ uint) error {
			created = true
			return nil
		}
		svc := NewLikeService(likeRepo, postRepo, noopUserRepo())
		err := svc.LikePost(ctx, 1, 99)
		assertNotFoundError(t, err)
		assert.False(t, created)
	})

	t.Run("duplicate like conflicts", func(t *testing.T) {
		t.Parallel()
		likeRepo := noopLikeRepo()
		likeRepo.createFn = func(_ context.Context, _, _ uint) error {
			return models.NewConflictError("Post is already liked")
		}
		svc := NewLikeService(likeRepo, noopPostRepo(), noopUserRepo())
		err := svc.LikePost(ctx, 1, 1)
		assertConflictError(t, err)
	})

	t.Run("first like succeeds", func(t *testing.T) {
		t.Parallel()
		svc := NewLikeService(noopLikeRepo(), noopPostRepo(), noopUserRepo())
		require.NoError(t, svc.LikePost(ctx, 1, 1))
	})
}

func TestLikeService_UnlikePost(t *testing.T) {
	t.Parallel()

	t.Run("absent like is not found", func(t *testing.T) {
		t.Parallel()
		likeRepo := noopLikeRepo()
		likeRepo.deleteFn = func(_ context.Context, _, postID uint) error {
			return models.NewNotFoundError("Like", postID)
		}
		svc := NewLikeService(likeRepo, noopPostRepo(), noopUserRepo())
		err := svc.UnlikePost(context.Background(), 1, 1)
		assertNotFoundError(t, err)
	})
}

func TestLikeService_ListLikedPosts(t *testing.T) {
	t.Parallel()

	t.Run("unknown user is not found", func(t *testing.T) {
		t.Parallel()
		svc := NewLikeService(noopLikeRepo(), noopPostRepo(), noopUserRepo())
		_, err := svc.ListLikedPosts(context.Background(), "ghost", 20, 0)
		assertNotFoundError(t, err)
	})

	t.Run("resolves username before listing", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo()
		userRepo.getByUsernameFn = func(_ context.Context, _ string) (*models.User, error) {
			return &models.User{ID: 6, Username: "alice"}, nil
		}
		var gotUserID uint
		likeRepo := noopLikeRepo()
		likeRepo.listLikedPostsFn = func(_ context.Context, userID uint, _, _ int) ([]*models.Post, error) {
			gotUserID = userID
			return []*models.Post{{ID: 1}}, nil
		}
		svc := NewLikeService(likeRepo, noopPostRepo(), userRepo)
		posts, err := svc.ListLikedPosts(context.Background(), "alice", 20, 0)
		require.NoError(t, err)
		assert.Len(t, posts, 1)
		assert.Equal(t, uint(6), gotUserID)
	})
}
