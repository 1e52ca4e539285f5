package controllers

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type toggleRequest struct {
	ID interface{} `json:"id"`
}

// bindToggleID reads the {id} body shared by both toggle endpoints. The
// frontend lifts ids off DOM attributes, so both JSON numbers and numeric
// strings are accepted. Replies 400 and returns false on anything else.
func bindToggleID(c *gin.Context) (uint, bool) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return 0, false
	}

	switch v := req.ID.(type) {
	case float64:
		// Bound before converting; out-of-range float to uint conversion is
		// implementation-defined. Matches the 32-bit bound on the string path.
		if v < 1 || v > math.MaxUint32 || v != math.Trunc(v) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
			return 0, false
		}
		return uint(v), true
	case string:
		parsed, err := strconv.ParseUint(strings.TrimSpace(v), 10, 32)
		if err != nil || parsed == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
			return 0, false
		}
		return uint(parsed), true
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return 0, false
	}
}
