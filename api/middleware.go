package api

import (
	"net/http"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/service/auth"
	"github.com/gin-gonic/gin"
)

const userContextKey = "currentUser"

type AuthMiddleware struct {
	auth       auth.AuthUseCase
	cookieName string
}

func NewAuthMiddleware(authSvc auth.AuthUseCase, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{auth: authSvc, cookieName: cookieName}
}

// RequireLogin aborts with 401 and a login redirect hint when no valid
// session cookie is present; otherwise the resolved user is stored on the
// request context.
func (m *AuthMiddleware) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := m.resolve(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required", "redirect": "/auth/login"})
			return
		}
		c.Set(userContextKey, user)
		c.Next()
	}
}

// RequireAdmin additionally checks the role claim on the user record. There
// is no username special-casing here.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := m.resolve(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required", "redirect": "/auth/login"})
			return
		}
		if user.Role != domain.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Set(userContextKey, user)
		c.Next()
	}
}

func (m *AuthMiddleware) resolve(c *gin.Context) (*domain.User, error) {
	token, err := c.Cookie(m.cookieName)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	return m.auth.CurrentUser(c.Request.Context(), token)
}

func currentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, _ := v.(*domain.User)
	return user
}
