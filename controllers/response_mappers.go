package controllers

import "Scribbler/models"

// userToResponse strips the password hash before a user row leaves the API.
func userToResponse(user *models.User) map[string]interface{} {
	return map[string]interface{}{
		"id":              user.ID,
		"public_id":       user.PublicID,
		"username":        user.Username,
		"email":           user.Email,
		"followers_count": user.FollowersCount,
		"following_count": user.FollowingCount,
		"created_at":      user.CreatedAt,
		"updated_at":      user.UpdatedAt,
	}
}
