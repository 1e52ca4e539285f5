package controllers

import (
	"errors"
	"net/http"

	"Scribbler/models"
	httpctx "Scribbler/utils/httpctx"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ToggleLike godoc
// @Summary      Toggle a like
// @Description  Like the post if not yet liked, unlike it otherwise
// @Tags         likes
// @Accept       json
// @Produce      json
// @Router       /likes/toggle [post]
// @Security     BearerAuth
func (server *Server) ToggleLike(c *gin.Context) {
	uid, ok := httpctx.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	postID, ok := bindToggleID(c)
	if !ok {
		return
	}

	post := models.Post{}
	if _, err := post.FindPostByID(server.DB, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading post"})
		return
	}

	result, err := models.ToggleLike(server.DB, uid, postID)
	if err != nil {
		// A constraint race rolled the transaction back; retry once as a
		// fresh re-read-then-toggle before surfacing the failure.
		result, err = models.ToggleLike(server.DB, uid, postID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error toggling like"})
		return
	}

	invalidateFeedCache()

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": result,
	})
}
