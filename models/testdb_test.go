package models

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	if err := db.AutoMigrate(&User{}, &Post{}, &Like{}, &Follow{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return db
}

func makeUser(t *testing.T, db *gorm.DB, username string) *User {
	t.Helper()
	user := User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Password: "password123",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", username, err)
	}
	return &user
}

func makePost(t *testing.T, db *gorm.DB, ownerID uint, contents string) *Post {
	t.Helper()
	post := Post{OwnerID: ownerID, Contents: contents}
	if err := db.Create(&post).Error; err != nil {
		t.Fatalf("Failed to create post: %v", err)
	}
	return &post
}
