package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rloerke/puffins/models"
)

// newTestDB opens a fresh in-memory SQLite database with the full schema.
// Connections are pinned to one so the in-memory store survives pooling.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Vote{},
		&models.Reaction{},
		&models.Follow{},
		&models.Block{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	u := models.User{Username: username, PasswordHash: "x"}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func createPost(t *testing.T, db *gorm.DB, author models.User, title, category string) models.Post {
	t.Helper()
	p := models.Post{UserID: author.ID, Title: title, Category: category, Body: "body of " + title}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func asViewer(u models.User) Viewer {
	return Viewer{ID: u.ID, Username: u.Username}
}

func asAdmin(u models.User) Viewer {
	return Viewer{ID: u.ID, Username: u.Username, IsAdmin: true}
}
