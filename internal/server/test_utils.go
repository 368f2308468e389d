package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type testCleanupRequest struct {
	Prefix string `json:"prefix"`
}

// TestCleanup removes users (and their wallets) whose email matches a prefix.
// Registered outside production only; used by integration suites.
func (s *Server) TestCleanup(c *gin.Context) {
	var req testCleanupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	prefix := strings.TrimSpace(req.Prefix)
	if prefix == "" {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	ctx := c.Request.Context()
	like := prefix + "%"

	if err := s.db.WithContext(ctx).Exec(
		`DELETE FROM wallets WHERE user_id IN (SELECT id FROM users WHERE email LIKE ?)`, like,
	).Error; err != nil {
		AbortWithError(c, err)
		return
	}
	if err := s.db.WithContext(ctx).Exec(
		`DELETE FROM users WHERE email LIKE ?`, like,
	).Error; err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
