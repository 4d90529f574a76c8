package middleware

import (
	"log"
	"net/http"

	"csvexplorer/domain/core"

	"github.com/gin-gonic/gin"
)

const (
	// SessionCookie names the cookie carrying the browser session ID
	SessionCookie = "csvexplorer_session"
	sessionKey    = "session_id"
)

// EnsureSession is middleware that ensures every request carries a session ID,
// issuing a fresh cookie when the browser has none or a malformed one
func EnsureSession(maxAge int) gin.HandlerFunc {
	return func(c *gin.Context) {
		var id core.SessionID
		if raw, err := c.Cookie(SessionCookie); err == nil {
			id, err = core.ParseSessionID(raw)
			if err != nil {
				log.Printf("[EnsureSession] Discarding session cookie: %v", err)
			}
		}

		if id == "" {
			id = core.NewSessionID()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, id.String(), maxAge, "/", "", false, true)
		}

		c.Set(sessionKey, id)
		c.Next()
	}
}

// SessionID returns the ID attached by EnsureSession
func SessionID(c *gin.Context) core.SessionID {
	if v, ok := c.Get(sessionKey); ok {
		if id, ok := v.(core.SessionID); ok {
			return id
		}
	}
	return ""
}
