package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/donggunkwak/Brainwave/internal/cache"
	"github.com/donggunkwak/Brainwave/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Integration(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Create and GetByID", func(t *testing.T) {
		user := &models.User{Username: "alice", Password: "hashed"}
		require.NoError(t, repo.Create(ctx, user))
		require.NotZero(t, user.ID)

		got, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", got.Username)
	})

	t.Run("Create duplicate username conflicts", func(t *testing.T) {
		err := repo.Create(ctx, &models.User{Username: "alice", Password: "hashed"})
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeConflict, appErr.Code)
	})

	t.Run("GetByID missing user", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 99999)
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})

	t.Run("GetByUsername returns nil when absent", func(t *testing.T) {
		got, err := repo.GetByUsername(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Update rename", func(t *testing.T) {
		user, err := repo.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, user)

		user.Username = "alice_two"
		require.NoError(t, repo.Update(ctx, user))

		got, err := repo.GetByUsername(ctx, "alice_two")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("Update to taken username conflicts", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, &models.User{Username: "bob", Password: "hashed"}))

		user, err := repo.GetByUsername(ctx, "alice_two")
		require.NoError(t, err)
		user.Username = "bob"
		err = repo.Update(ctx, user)

		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeConflict, appErr.Code)
	})

	t.Run("Delete hides user from lookups", func(t *testing.T) {
		user, err := repo.GetByUsername(ctx, "bob")
		require.NoError(t, err)
		require.NoError(t, repo.Delete(ctx, user.ID))

		got, err := repo.GetByUsername(ctx, "bob")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("List paginates", func(t *testing.T) {
		users, err := repo.List(ctx, 10, 0)
		require.NoError(t, err)
		assert.NotEmpty(t, users)

		none, err := repo.List(ctx, 10, 1000)
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}

// Not parallel: it wires the package-global cache client.
func TestUserRepository_CachedReads(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache.SetClient(rdb)
	t.Cleanup(func() {
		cache.SetClient(nil)
		_ = rdb.Close()
	})

	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Username: "cached_user", Password: "bcrypt-hash-stand-in"}
	require.NoError(t, repo.Create(ctx, user))

	// First read fills the cache, second read is served from it. Both must
	// carry the password hash even though the API JSON view drops it.
	first, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "bcrypt-hash-stand-in", first.Password)
	require.True(t, mr.Exists(cache.UserKey(user.ID)))

	second, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "cached_user", second.Username)
	assert.Equal(t, "bcrypt-hash-stand-in", second.Password)

	// A rename based on a cache hit must not clobber the stored hash.
	second.Username = "cached_user_two"
	require.NoError(t, repo.Update(ctx, second))

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, "cached_user_two", stored.Username)
	assert.Equal(t, "bcrypt-hash-stand-in", stored.Password)
}
