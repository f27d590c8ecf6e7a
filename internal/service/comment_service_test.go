package service

import (
	"context"
	"strings"
	"testing"

	"github.com/donggunkwak/Brainwave/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn      func(context.Context, *models.Comment) error
	getByIDFn     func(context.Context, uint) (*models.Comment, error)
	getByPostIDFn func(context.Context, uint, int, int) ([]*models.Comment, error)
	updateFn      func(context.Context, *models.Comment) error
	deleteFn      func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) GetByPostID(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, error) {
	return s.getByPostIDFn(ctx, postID, limit, offset)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:  func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		getByPostIDFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Comment, error) {
			return nil, nil
		},
		updateFn: func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

func TestCommentService_CreateComment_Validation(t *testing.T) {
	t.Parallel()

	svc := NewCommentService(noopCommentRepo(), noopPostRepo())
	ctx := context.Background()

	t.Run("empty content", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreateComment(ctx, CreateCommentInput{UserID: 1, PostID: 1})
		assertValidationError(t, err)
	})

	t.Run("content too long", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreateComment(ctx, CreateCommentInput{
			UserID:  1,
			PostID:  1,
			Content: strings.Repeat("x", 5001),
		})
		assertValidationError(t, err)
	})
}

func TestCommentService_CreateComment_MissingPost(t *testing.T) {
	t.Parallel()

	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return nil, models.NewNotFoundError("Post", id)
	}

	var created bool
	commentRepo := noopCommentRepo()
	commentRepo.createFn = func(_ context.Context, _ *models.Comment) error {
		created = true
		return nil
	}

	svc := NewCommentService(commentRepo, postRepo)
	_, err := svc.CreateComment(context.Background(), CreateCommentInput{UserID: 1, PostID: 99, Content: "hi"})
	assertNotFoundError(t, err)
	assert.False(t, created)
}

func TestCommentService_CreateComment_Success(t *testing.T) {
	t.Parallel()

	commentRepo := noopCommentRepo()
	commentRepo.createFn = func(_ context.Context, c *models.Comment) error {
		c.ID = 42
		return nil
	}
	commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
		return &models.Comment{ID: id, Content: "hello", AuthorID: 1, PostID: 1}, nil
	}

	svc := NewCommentService(commentRepo, noopPostRepo())
	comment, err := svc.CreateComment(context.Background(), CreateCommentInput{
		UserID:  1,
		PostID:  1,
		Content: "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(42), comment.ID)
	assert.Equal(t, "hello", comment.Content)
}

func TestCommentService_UpdateComment(t *testing.T) {
	t.Parallel()

	t.Run("non-owner cannot update", func(t *testing.T) {
		t.Parallel()
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) {
			return &models.Comment{ID: 1, AuthorID: 10, PostID: 1}, nil
		}
		svc := NewCommentService(commentRepo, noopPostRepo())
		_, err := svc.UpdateComment(context.Background(), UpdateCommentInput{UserID: 1, PostID: 1, CommentID: 1, Content: "new"})
		assertUnauthorizedError(t, err)
	})

	t.Run("comment under a different post is not found", func(t *testing.T) {
		t.Parallel()
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) {
			return &models.Comment{ID: 1, AuthorID: 1, PostID: 2}, nil
		}
		svc := NewCommentService(commentRepo, noopPostRepo())
		_, err := svc.UpdateComment(context.Background(), UpdateCommentInput{UserID: 1, PostID: 1, CommentID: 1, Content: "new"})
		assertNotFoundError(t, err)
	})

	t.Run("owner can update content", func(t *testing.T) {
		t.Parallel()
		storedContent := "old"
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) {
			return &models.Comment{ID: 1, AuthorID: 1, PostID: 1, Content: storedContent}, nil
		}
		commentRepo.updateFn = func(_ context.Context, c *models.Comment) error {
			storedContent = c.Content
			return nil
		}
		svc := NewCommentService(commentRepo, noopPostRepo())
		comment, err := svc.UpdateComment(context.Background(), UpdateCommentInput{UserID: 1, PostID: 1, CommentID: 1, Content: "updated"})
		require.NoError(t, err)
		assert.Equal(t, "updated", comment.Content)
	})
}

func TestCommentService_DeleteComment(t *testing.T) {
	t.Parallel()

	t.Run("owner can delete", func(t *testing.T) {
		t.Parallel()
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) {
			return &models.Comment{ID: 1, AuthorID: 1, PostID: 1}, nil
		}
		svc := NewCommentService(commentRepo, noopPostRepo())
		comment, err := svc.DeleteComment(context.Background(), DeleteCommentInput{UserID: 1, PostID: 1, CommentID: 1})
		require.NoError(t, err)
		assert.Equal(t, uint(1), comment.ID)
	})

	t.Run("non-owner gets unauthorized", func(t *testing.T) {
		t.Parallel()
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) {
			return &models.Comment{ID: 1, AuthorID: 10, PostID: 1}, nil
		}
		var deleted bool
		commentRepo.deleteFn = func(_ context.Context, _ uint) error {
			deleted = true
			return nil
		}
		svc := NewCommentService(commentRepo, noopPostRepo())
		_, err := svc.DeleteComment(context.Background(), DeleteCommentInput{UserID: 1, PostID: 1, CommentID: 1})
		assertUnauthorizedError(t, err)
		assert.False(t, deleted)
	})
}
