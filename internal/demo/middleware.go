package demo

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Middleware blocks write operations in demo mode.
// Read-only operations (GET) are always allowed, as are the allowlisted path
// prefixes.
type Middleware struct {
	enabled      bool
	allowedPaths []string
}

// NewMiddleware creates a demo mode middleware. allowedPaths are path
// prefixes that accept writes even in demo mode.
func NewMiddleware(enabled bool, allowedPaths ...string) *Middleware {
	return &Middleware{enabled: enabled, allowedPaths: allowedPaths}
}

// IsEnabled returns whether demo mode is active.
func (m *Middleware) IsEnabled() bool {
	return m != nil && m.enabled
}

// Handler returns a Gin middleware that blocks write operations.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.enabled {
			c.Next()
			return
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		if m.isAllowedPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":     "This action is disabled in demo mode",
			"demo_mode": true,
		})
	}
}

func (m *Middleware) isAllowedPath(path string) bool {
	for _, allowed := range m.allowedPaths {
		if strings.HasPrefix(path, allowed) {
			return true
		}
	}
	return false
}

// ContextKeyDemoMode is set on every request while demo mode is active.
const ContextKeyDemoMode = "demo_mode"

// InjectContext adds the demo mode flag to the request context and the
// X-Demo-Mode response header so the frontend can hide write actions.
func (m *Middleware) InjectContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyDemoMode, m.enabled)
		if m.enabled {
			c.Header("X-Demo-Mode", "true")
		}
		c.Next()
	}
}
