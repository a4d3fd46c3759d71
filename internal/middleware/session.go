package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/glencullen/golfpoi/internal/auth"
	"github.com/glencullen/golfpoi/internal/config"
)

const ContextSessionUserID = "sessionUserID"

// SessionMiddleware guards server-rendered pages with the signed session
// cookie. An unauthenticated browser is redirected to the landing page.
func SessionMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(cfg.SessionCookieName)
		if err != nil {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}

		claims, err := auth.VerifyToken(cookie, []byte(cfg.SessionSecret))
		if err != nil {
			c.SetCookie(cfg.SessionCookieName, "", -1, "/", "", false, true)
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}

		c.Set(ContextSessionUserID, claims.UserID)
		c.Next()
	}
}

// SetSessionCookie issues the cookie after a successful login or signup.
func SetSessionCookie(c *gin.Context, cfg *config.Config, userID uint) error {
	token, err := auth.IssueSessionToken(userID, []byte(cfg.SessionSecret))
	if err != nil {
		return err
	}
	c.SetCookie(cfg.SessionCookieName, token, int(auth.SessionTTL.Seconds()), "/", "", false, true)
	return nil
}

func ClearSessionCookie(c *gin.Context, cfg *config.Config) {
	c.SetCookie(cfg.SessionCookieName, "", -1, "/", "", false, true)
}
