package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/signage-console/internal/session"
)

const consoleSessionKey = "consoleSession"

// SetSession attaches the console session to the request.
func SetSession(c *gin.Context, s *session.Session) {
	c.Set(consoleSessionKey, s)
}

func CurrentSession(c *gin.Context) (*session.Session, bool) {
	v, ok := c.Get(consoleSessionKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*session.Session)
	return s, ok && s != nil
}

// LoginPath is where unauthenticated visitors are sent.
const LoginPath = "/login"

// RequireSession lets signed-in sessions through. While the stored token is still being
// validated it renders loading instead; without an identity it redirects to the login page,
// remembering the requested path.
func RequireSession(loading gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := CurrentSession(c)
		if !ok {
			redirectToLogin(c)
			return
		}

		s.Restore(c.Request.Context())
		if s.Loading() {
			loading(c)
			c.Abort()
			return
		}
		if _, ok := s.Identity(); !ok {
			redirectToLogin(c)
			return
		}
		c.Next()
	}
}

func redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, LoginURL(c.Request))
	c.Abort()
}

// LoginURL is the login page, carrying r as next when r is a page that can be returned to.
func LoginURL(r *http.Request) string {
	target := LoginPath
	if next := r.URL.RequestURI(); r.Method == http.MethodGet && next != "/" {
		target += "?next=" + url.QueryEscape(next)
	}
	return target
}

// SafeNext returns next when it is a local path, otherwise fallback.
func SafeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	if next == LoginPath || strings.HasPrefix(next, LoginPath+"?") {
		return fallback
	}
	return next
}
