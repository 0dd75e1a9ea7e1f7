package middlewares

import (
	"HospitalAdmin/session"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// AuthPath is where unauthenticated navigations are sent.
const AuthPath = "/auth"

// SessionResolver decodes the requester's token, if any, and stores the
// session in the request context. Requests without a valid token continue
// anonymously; the guards decide what they may reach.
func SessionResolver(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := manager.FromRequest(c.Request)
		switch {
		case err == nil:
			c.Request = c.Request.WithContext(session.WithSession(c.Request.Context(), s))
		case errors.Is(err, session.ErrMissingToken):
		default:
			log.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("ignoring invalid session token")
		}
		c.Next()
	}
}

// RequireSession sends unauthenticated navigations to the auth screen and
// rejects unauthenticated API calls with 401.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := session.FromContext(c.Request.Context()); ok {
			c.Next()
			return
		}
		if isNavigation(c.Request) {
			c.Redirect(http.StatusFound, AuthPath)
			c.Abort()
			return
		}
		AbortWithError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required", gin.H{"redirect": AuthPath})
	}
}

// RedirectIfAuthenticated keeps signed-in users away from the auth screen.
func RedirectIfAuthenticated(home string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := session.FromContext(c.Request.Context()); !ok {
			c.Next()
			return
		}
		if isNavigation(c.Request) {
			c.Redirect(http.StatusFound, home)
		} else {
			c.JSON(http.StatusOK, gin.H{"authenticated": true, "redirect": home})
		}
		c.Abort()
	}
}

// isNavigation reports whether the request is a page load rather than an
// API call.
func isNavigation(r *http.Request) bool {
	if r.Method != http.MethodGet {
		return false
	}
	if r.Header.Get("Sec-Fetch-Mode") == "navigate" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
