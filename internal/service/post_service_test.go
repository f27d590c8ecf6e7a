package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/donggunkwak/Brainwave/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn        func(context.Context, *models.Post) error
	getByIDFn       func(context.Context, uint) (*models.Post, error)
	getByAuthorIDFn func(context.Context, uint, int, int) ([]*models.Post, error)
	listFn          func(context.Context, int, int) ([]*models.Post, error)
	updateFn        func(context.Context, *models.Post) error
	deleteFn        func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) GetByAuthorID(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error) {
	return s.getByAuthorIDFn(ctx, authorID, limit, offset)
}
func (s *postRepoStub) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:  func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		getByAuthorIDFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Post, error) {
			return nil, nil
		},
		listFn:   func(_ context.Context, _, _ int) ([]*models.Post, error) { return nil, nil },
		updateFn: func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected *models.AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeValidation)
}

func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeUnauthorized)
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func assertConflictError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeConflict)
}

func TestPostService_CreatePost_Validation(t *testing.T) {
	t.Parallel()

	svc := NewPostService(noopPostRepo(), noopUserRepo())
	ctx := context.Background()

	t.Run("empty content", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreatePost(ctx, CreatePostInput{AuthorID: 1})
		assertValidationError(t, err)
	})

	t.Run("content too long", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreatePost(ctx, CreatePostInput{
			AuthorID: 1,
			Content:  strings.Repeat("x", 10001),
		})
		assertValidationError(t, err)
	})
}

func TestPostService_CreatePost_Success(t *testing.T) {
	t.Parallel()

	postRepo := noopPostRepo()
	postRepo.createFn = func(_ context.Context, p *models.Post) error {
		p.ID = 7
		return nil
	}
	postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, Content: "hello", AuthorID: 1}, nil
	}

	svc := NewPostService(postRepo, noopUserRepo())
	post, err := svc.CreatePost(context.Background(), CreatePostInput{AuthorID: 1, Content: "hello"})
	require.NoError(t, err)
	assert.Equal(t, uint(7), post.ID)
	assert.Equal(t, "hello", post.Content)
}

func TestPostService_ListPosts_AuthorFilter(t *testing.T) {
	t.Parallel()

	t.Run("unknown author is not found", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo()
		userRepo.getByUsernameFn = func(_ context.Context, _ string) (*models.User, error) {
			return nil, nil
		}
		svc := NewPostService(noopPostRepo(), userRepo)
		_, err := svc.ListPosts(context.Background(), "ghost", 20, 0)
		assertNotFoundError(t, err)
	})

	t.Run("known author narrows the query", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo()
		userRepo.getByUsernameFn = func(_ context.Context, _ string) (*models.User, error) {
			return &models.User{ID: 5, Username: "alice"}, nil
		}
		postRepo := noopPostRepo()
		var gotAuthorID uint
		postRepo.getByAuthorIDFn = func(_ context.Context, authorID uint, _, _ int) ([]*models.Post, error) {
			gotAuthorID = authorID
			return []*models.Post{{ID: 1, AuthorID: authorID}}, nil
		}
		svc := NewPostService(postRepo, userRepo)
		posts, err := svc.ListPosts(context.Background(), "alice", 20, 0)
		require.NoError(t, err)
		assert.Len(t, posts, 1)
		assert.Equal(t, uint(5), gotAuthorID)
	})
}

func TestPostService_UpdatePost_Ownership(t *testing.T) {
	t.Parallel()

	t.Run("non-owner cannot update", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) {
			return &models.Post{ID: 1, AuthorID: 10}, nil
		}
		var updated bool
		postRepo.updateFn = func(_ context.Context, _ *models.Post) error {
			updated = true
			return nil
		}
		svc := NewPostService(postRepo, noopUserRepo())
		_, err := svc.UpdatePost(context.Background(), UpdatePostInput{UserID: 1, PostID: 1, Content: "new"})
		assertUnauthorizedError(t, err)
		assert.False(t, updated)
	})

	t.Run("owner can update content", func(t *testing.T) {
		t.Parallel()
		storedContent := "old"
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) {
			return &models.Post{ID: 1, AuthorID: 1, Content: storedContent}, nil
		}
		postRepo.updateFn = func(_ context.Context, p *models.Post) error {
			storedContent = p.Content
			return nil
		}
		svc := NewPostService(postRepo, noopUserRepo())
		post, err := svc.UpdatePost(context.Background(), UpdatePostInput{UserID: 1, PostID: 1, Content: "updated"})
		require.NoError(t, err)
		assert.Equal(t, "updated", post.Content)
	})
}

func TestPostService_DeletePost_Ownership(t *testing.T) {
	t.Parallel()

	t.Run("owner can delete", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) {
			return &models.Post{ID: 1, AuthorID: 1}, nil
		}
		svc := NewPostService(postRepo, noopUserRepo())
		post, err := svc.DeletePost(context.Background(), DeletePostInput{UserID: 1, PostID: 1})
		require.NoError(t, err)
		assert.Equal(t, uint(1), post.ID)
	})

	t.Run("non-owner gets unauthorized", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) {
			return &models.Post{ID: 1, AuthorID: 10}, nil
		}
		var deleted bool
		postRepo.deleteFn = func(_ context.Context, _ uint) error {
			deleted = true
			return nil
		}
		svc := NewPostService(postRepo, noopUserRepo())
		_, err := svc.DeletePost(context.Background(), DeletePostInput{UserID: 1, PostID: 1})
		assertUnauthorizedError(t, err)
		assert.False(t, deleted)
	})
}
