package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Register(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthUseCase) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domain.User), args.Error(2)
}

func (m *MockAuthUseCase) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuthUseCase) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func newAuthRouter(service *MockAuthUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	mw := NewAuthMiddleware(service, "fb_session")
	NewAuthHandler(service, "fb_session", 3600).Register(router.Group("/auth"), mw)
	return router
}

func TestAuthHandler_Register_Success(t *testing.T) {
	mockService := &MockAuthUseCase{}
	router := newAuthRouter(mockService)

	user := &domain.User{ID: 1, Username: "alice", Role: domain.RoleUser}
	mockService.On("Register", mock.Anything, "alice", "pw1").Return(user, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"username":"alice","password":"pw1"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "/auth/login", resp["redirect"])
	// no session cookie on registration
	assert.Empty(t, w.Header().Get("Set-Cookie"))

	mockService.AssertExpectations(t)
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	mockService := &MockAuthUseCase{}
	router := newAuthRouter(mockService)

	mockService.On("Register", mock.Anything, "alice", "pw1").Return(nil, domain.ErrDuplicateUsername).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"username":"alice","password":"pw1"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	mockService := &MockAuthUseCase{}
	router := newAuthRouter(mockService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"username":"  ","password":""}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Register")
}

func TestAuthHandler_Login_Success(t *testing.T) {
	mockService := &MockAuthUseCase{}
	router := newAuthRouter(mockService)

	user := &domain.User{ID: 1, Username: "alice", Role: domain.RoleUser}
	mockService.On("Login", mock.Anything, "alice", "pw1").Return("session-token", user, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"alice","password":"pw1"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	cookie := w.Header().Get("Set-Cookie")
	assert.Contains(t, cookie, "fb_session=session-token")
	assert.Contains(t, cookie, "HttpOnly")

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "/flights", resp["redirect"])

	mockService.AssertExpectations(t)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	mockService := &MockAuthUseCase{}
	router := newAuthRouter(mockService)

	mockService.On("Login", mock.Anything, "alice", "wrong").Return("", nil, domain.ErrInvalidCredentials).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"alice","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Header().Get("Set-Cookie"))
}

func TestAuthHandler_Logout_Success(t *testing.T) {
	mockService := &MockAuthUseCase{}
	router := newAuthRouter(mockService)

	mockService.On("Logout", mock.Anything, "session-token").Return(nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "fb_session", Value: "session-token"})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	// the cookie is cleared
	assert.Contains(t, w.Header().Get("Set-Cookie"), "fb_session=")
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")

	mockService.AssertExpectations(t)
}

func TestAuthHandler_Logout_NoSession(t *testing.T) {
	mockService := &MockAuthUseCase{}
	router := newAuthRouter(mockService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockService.AssertNotCalled(t, "Logout")
}

func TestAuthHandler_Me(t *testing.T) {
	mockService := &MockAuthUseCase{}
	router := newAuthRouter(mockService)

	user := &domain.User{ID: 1, Username: "alice", Role: domain.RoleAdmin}
	mockService.On("CurrentUser", mock.Anything, "session-token").Return(user, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "fb_session", Value: "session-token"})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp["username"])
	assert.Equal(t, "admin", resp["role"])
	// the password hash never reaches the wire
	assert.NotContains(t, w.Body.String(), "password")
}
