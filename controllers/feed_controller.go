package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"Scribbler/cache"
	"Scribbler/models"
	httpctx "Scribbler/utils/httpctx"

	"github.com/gin-gonic/gin"
)

// GetFeed godoc
// @Summary      Get the feed
// @Description  Paginated posts annotated with like-state and author name
// @Tags         feed
// @Produce      json
// @Param        page       query  int     false  "1-based page (page size 10)"
// @Param        owner_id   query  int     false  "Restrict to one owner's posts"
// @Param        following  query  string  false  "Restrict to followed users"
// @Router       /feed [get]
// @Security     BearerAuth
func (server *Server) GetFeed(c *gin.Context) {
	viewerID, ok := httpctx.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	var ownerID uint
	if raw := strings.TrimSpace(c.Query("owner_id")); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid owner ID"})
			return
		}
		// A nonexistent owner just yields an empty page; no lookup needed.
		ownerID = uint(parsed)
	}

	followingOnly := isTruthyFlag(c.Query("following"))

	ctx := context.Background()
	cacheKey := fmt.Sprintf("feed:%d:%d:%t:%d", viewerID, ownerID, followingOnly, page)

	if cached, err := cache.Get(ctx, cacheKey); err == nil && cached != "" {
		c.Data(http.StatusOK, "application/json", []byte(cached))
		return
	}

	feedPage, err := models.ComposeFeed(server.DB, models.FeedQuery{
		ViewerID:      viewerID,
		OwnerID:       ownerID,
		FollowingOnly: followingOnly,
		Page:          page,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error composing feed"})
		return
	}

	respBody := gin.H{
		"status":             http.StatusOK,
		"posts":              feedPage.Posts,
		"total_pages":        feedPage.TotalPages,
		"current_page_count": feedPage.CurrentPageCount,
	}

	if jsonBytes, err := json.Marshal(respBody); err == nil {
		_ = cache.Set(ctx, cacheKey, jsonBytes, 30*time.Second)
	}

	c.JSON(http.StatusOK, respBody)
}

// isTruthyFlag applies one uniform rule for flag query params: the trimmed,
// lowercased value must be one of 1/true/t/yes/on. Absence and anything else
// is false.
func isTruthyFlag(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "t", "yes", "on":
		return true
	}
	return false
}
