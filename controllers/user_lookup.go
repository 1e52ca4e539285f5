package controllers

import (
	"errors"
	"strconv"
	"strings"

	"Scribbler/models"

	"gorm.io/gorm"
)

// resolveUserByIdentifier accepts a numeric id or a username, in that order.
// Numeric ids are what the feed hands out; usernames keep profile URLs
// readable.
func resolveUserByIdentifier(db *gorm.DB, identifier string) (*models.User, error) {
	trimmed := strings.TrimSpace(identifier)
	if trimmed == "" {
		return nil, gorm.ErrRecordNotFound
	}

	var user models.User
	if uid, err := strconv.ParseUint(trimmed, 10, 32); err == nil {
		if err := db.Where("id = ?", uint(uid)).First(&user).Error; err == nil {
			return &user, nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, gorm.ErrRecordNotFound
	}

	username := strings.ToLower(trimmed)
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
