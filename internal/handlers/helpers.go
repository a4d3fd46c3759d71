package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/glencullen/golfpoi/internal/middleware"
)

// parseID turns a path segment into a record id. A malformed segment is
// indistinguishable from an absent record for callers: both end in 404.
func parseID(s string) (uint, bool) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func tokenUserID(c *gin.Context) *uint {
	v, ok := c.Get(middleware.ContextUserID)
	if !ok {
		return nil
	}
	id, ok := v.(uint)
	if !ok {
		return nil
	}
	return &id
}

func sessionUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(middleware.ContextSessionUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// renderError shows the browser-facing error view with a message list.
func renderError(c *gin.Context, status int, messages ...string) {
	c.HTML(status, "error.tmpl", gin.H{
		"Title":    "GolfPOI Error",
		"Messages": messages,
	})
}
