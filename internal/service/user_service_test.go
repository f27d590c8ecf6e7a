package service

import (
	"context"
	"testing"

	"github.com/donggunkwak/Brainwave/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	deleteFn        func(context.Context, uint) error
	listFn          func(context.Context, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
		listFn:          func(_ context.Context, _, _ int) ([]models.User, error) { return nil, nil },
	}
}

func TestUserService_Register_Validation(t *testing.T) {
	t.Parallel()

	svc := NewUserService(noopUserRepo(), noopFriendRepo(), nil)
	ctx := context.Background()

	t.Run("username too short", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Register(ctx, RegisterInput{Username: "ab", Password: "password123"})
		assertValidationError(t, err)
	})

	t.Run("username with invalid characters", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Register(ctx, RegisterInput{Username: "bad name!", Password: "password123"})
		assertValidationError(t, err)
	})

	t.Run("password too short", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Register(ctx, RegisterInput{Username: "newuser", Password: "short"})
		assertValidationError(t, err)
	})
}

func TestUserService_Register_HashesPassword(t *testing.T) {
	t.Parallel()

	var created *models.User
	userRepo := noopUserRepo()
	userRepo.createFn = func(_ context.Context, u *models.User) error {
		u.ID = 3
		created = u
		return nil
	}

	svc := NewUserService(userRepo, noopFriendRepo(), nil)
	user, err := svc.Register(context.Background(), RegisterInput{Username: "newuser", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, uint(3), user.ID)

	require.NotNil(t, created)
	assert.NotEqual(t, "password123", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("password123")))
}

func TestUserService_Authenticate(t *testing.T) {
	t.Parallel()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	userRepo := noopUserRepo()
	userRepo.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		if username == "alice" {
			return &models.User{ID: 1, Username: "alice", Password: string(hashed)}, nil
		}
		return nil, nil
	}
	svc := NewUserService(userRepo, noopFriendRepo(), nil)
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		t.Parallel()
		user, err := svc.Authenticate(ctx, "alice", "password123")
		require.NoError(t, err)
		assert.Equal(t, uint(1), user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Authenticate(ctx, "alice", "wrong-password")
		assertAppErrorCode(t, err, models.CodeUnauthenticated)
	})

	t.Run("unknown username", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Authenticate(ctx, "ghost", "password123")
		assertAppErrorCode(t, err, models.CodeUnauthenticated)
	})
}

func TestUserService_ChangeUsername(t *testing.T) {
	t.Parallel()

	t.Run("invalid new name", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo(), noopFriendRepo(), nil)
		_, err := svc.ChangeUsername(context.Background(), ChangeUsernameInput{UserID: 1, Username: "x"})
		assertValidationError(t, err)
	})

	t.Run("conflict from storage propagates", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo()
		userRepo.updateFn = func(_ context.Context, _ *models.User) error {
			return models.NewConflictError("Username is already taken")
		}
		svc := NewUserService(userRepo, noopFriendRepo(), nil)
		_, err := svc.ChangeUsername(context.Background(), ChangeUsernameInput{UserID: 1, Username: "taken_name"})
		assertConflictError(t, err)
	})

	t.Run("rename persists", func(t *testing.T) {
		t.Parallel()
		var saved *models.User
		userRepo := noopUserRepo()
		userRepo.updateFn = func(_ context.Context, u *models.User) error {
			saved = u
			return nil
		}
		svc := NewUserService(userRepo, noopFriendRepo(), nil)
		user, err := svc.ChangeUsername(context.Background(), ChangeUsernameInput{UserID: 1, Username: "fresh_name"})
		require.NoError(t, err)
		assert.Equal(t, "fresh_name", user.Username)
		require.NotNil(t, saved)
		assert.Equal(t, "fresh_name", saved.Username)
	})
}

func TestUserService_ChangePassword(t *testing.T) {
	t.Parallel()

	t.Run("too short", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo(), noopFriendRepo(), nil)
		err := svc.ChangePassword(context.Background(), ChangePasswordInput{UserID: 1, Password: "short"})
		assertValidationError(t, err)
	})

	t.Run("stores a hash", func(t *testing.T) {
		t.Parallel()
		var saved *models.User
		userRepo := noopUserRepo()
		userRepo.updateFn = func(_ context.Context, u *models.User) error {
			saved = u
			return nil
		}
		svc := NewUserService(userRepo, noopFriendRepo(), nil)
		err := svc.ChangePassword(context.Background(), ChangePasswordInput{UserID: 1, Password: "new-password-1"})
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("new-password-1")))
	})
}

func TestUserService_DeleteAccount(t *testing.T) {
	t.Parallel()

	var deletedUserID uint
	userRepo := noopUserRepo()
	userRepo.deleteFn = func(_ context.Context, id uint) error {
		deletedUserID = id
		return nil
	}

	var clearedFriendsFor uint
	friendRepo := noopFriendRepo()
	friendRepo.deleteAllForUserFn = func(_ context.Context, userID uint) error {
		clearedFriendsFor = userID
		return nil
	}

	var revokedFor uint
	revoke := func(_ context.Context, userID uint) error {
		revokedFor = userID
		return nil
	}

	svc := NewUserService(userRepo, friendRepo, revoke)
	require.NoError(t, svc.DeleteAccount(context.Background(), 8))
	assert.Equal(t, uint(8), deletedUserID)
	assert.Equal(t, uint(8), clearedFriendsFor)
	assert.Equal(t, uint(8), revokedFor)
}
