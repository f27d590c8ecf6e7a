package repository

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/donggunkwak/Brainwave/internal/database"
	"github.com/donggunkwak/Brainwave/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")
	os.Exit(m.Run())
}

// newTestDB opens a fresh in-memory database per test so tests stay isolated
// and can run in parallel.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite()
	require.NoError(t, err)
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := &models.User{
		Username: fmt.Sprintf("%s_%d", name, time.Now().UnixNano()),
		Password: "hashed-password",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, authorID uint, content string) *models.Post {
	t.Helper()
	post := &models.Post{Content: content, AuthorID: authorID}
	require.NoError(t, db.Create(post).Error)
	return post
}
