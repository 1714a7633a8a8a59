package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/service/auth"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service      auth.AuthUseCase
	cookieName   string
	cookieMaxAge int
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func NewAuthHandler(service auth.AuthUseCase, cookieName string, cookieMaxAge int) *AuthHandler {
	return &AuthHandler{service: service, cookieName: cookieName, cookieMaxAge: cookieMaxAge}
}

func (h *AuthHandler) Register(router *gin.RouterGroup, mw *AuthMiddleware) {
	router.POST("/register", h.register)
	router.POST("/login", h.login)
	router.POST("/logout", h.logout)
	router.GET("/me", mw.RequireLogin(), h.me)
}

func (h *AuthHandler) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	user, err := h.service.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			c.JSON(http.StatusConflict, gin.H{"error": "username already taken"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// No auto-login: the client is pointed at the login page.
	c.JSON(http.StatusCreated, gin.H{
		"message":  "registration successful, you can now log in",
		"redirect": "/auth/login",
		"user":     userResponse{ID: user.ID, Username: user.Username, Role: string(user.Role)},
	})
}

func (h *AuthHandler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, user, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.SetCookie(h.cookieName, token, h.cookieMaxAge, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"redirect": "/flights",
		"user":     userResponse{ID: user.ID, Username: user.Username, Role: string(user.Role)},
	})
}

func (h *AuthHandler) logout(c *gin.Context) {
	token, err := c.Cookie(h.cookieName)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "login required", "redirect": "/auth/login"})
		return
	}
	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.SetCookie(h.cookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"redirect": "/flights"})
}

func (h *AuthHandler) me(c *gin.Context) {
	user := currentUser(c)
	c.JSON(http.StatusOK, userResponse{ID: user.ID, Username: user.Username, Role: string(user.Role)})
}
