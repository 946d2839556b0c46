package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	// CookieName carries the session token.
	CookieName = "session_token"

	contextKeyUser = "session_user"

	loginPage = "/login.html"
)

// UsernameFromContext returns the username set by RequireSession, or "" when
// the request is unauthenticated.
func UsernameFromContext(c *gin.Context) string {
	v, ok := c.Get(contextKeyUser)
	if !ok {
		return ""
	}
	username, _ := v.(string)
	return username
}

// RequireSession gates a route group behind a valid session cookie. Failures
// answer 401 with a Location pointing at the login page; browser clients
// follow it, API clients treat the 401 itself as authoritative.
func RequireSession(sessions *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CookieName)
		if err != nil || token == "" {
			unauthorized(c)
			return
		}
		username, ok := sessions.Resolve(token)
		if !ok {
			unauthorized(c)
			return
		}
		c.Set(contextKeyUser, username)
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.Header("Location", loginPage)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "unauthorized"})
}
