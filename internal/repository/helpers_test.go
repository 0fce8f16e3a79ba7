package repository

import (
	"fmt"
	"testing"
	"time"

	"quill/internal/database"
	"quill/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory SQLite database for one test. The named
// DSN keeps the database alive across pooled connections.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestGroup(t *testing.T, db *gorm.DB, slug string) *models.Group {
	t.Helper()
	group := &models.Group{
		Title: "Group " + slug,
		Slug:  slug,
	}
	require.NoError(t, db.Create(group).Error)
	return group
}

func createTestPost(t *testing.T, db *gorm.DB, author *models.User, group *models.Group, text string, createdAt time.Time) *models.Post {
	t.Helper()
	post := &models.Post{
		Text:     text,
		AuthorID: author.ID,
	}
	if group != nil {
		post.GroupID = &group.ID
	}
	require.NoError(t, db.Create(post).Error)
	// Create overwrites CreatedAt; pin it afterwards so ordering is exact.
	require.NoError(t, db.Model(post).UpdateColumn("created_at", createdAt).Error)
	post.CreatedAt = createdAt
	return post
}
