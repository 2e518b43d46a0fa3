package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"microblog/internal/app"
	"microblog/internal/repository"
)

type fakeSessions struct {
	mu     sync.Mutex
	active map[string]string
}

func (s *fakeSessions) Save(ctx context.Context, jti, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active[jti] = userID
	return nil
}

func (s *fakeSessions) Revoke(ctx context.Context, jti string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.active, jti)
	return nil
}

func (s *fakeSessions) IsActive(ctx context.Context, jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.active[jti]
	return ok, nil
}

// newTestRouter wires the route table onto memory-backed services. Auth
// middleware is left off: these tests target the core operation mapping,
// token handling has its own coverage in the app package.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := repository.NewMemoryUserRepository()
	tweets := repository.NewMemoryTweetRepository()

	userSvc := app.NewUserService(users)
	tweetSvc := app.NewTweetService(tweets, users, nil)
	authSvc := app.NewAuthService(users, &fakeSessions{active: make(map[string]string)}, "test-secret", time.Hour)

	userHandler := NewUserHandler(userSvc)
	tweetHandler := NewTweetHandler(tweetSvc)
	authHandler := NewAuthHandler(authSvc)

	router := gin.New()
	router.POST("/signup", userHandler.Signup)
	router.POST("/login", authHandler.Login)
	router.GET("/users", userHandler.List)
	router.GET("/users/:id", userHandler.Get)
	router.PUT("/users/:id/update", userHandler.Update)
	router.DELETE("/users/:id/delete", userHandler.Delete)
	router.GET("/tweets", tweetHandler.List)
	router.GET("/tweets/:id", tweetHandler.Get)
	router.POST("/post", tweetHandler.Post)
	router.PUT("/tweets/:id/update", tweetHandler.Update)
	router.DELETE("/tweets/:id/delete", tweetHandler.Delete)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func dataObject(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	data, ok := decodeEnvelope(t, rec)["data"].(map[string]any)
	require.True(t, ok, "expected object data, body: %s", rec.Body.String())
	return data
}

func dataArray(t *testing.T, rec *httptest.ResponseRecorder) []any {
	t.Helper()

	data, ok := decodeEnvelope(t, rec)["data"].([]any)
	require.True(t, ok, "expected array data, body: %s", rec.Body.String())
	return data
}

func signupBody() map[string]any {
	return map[string]any{
		"user_id":    "11111111-1111-1111-1111-111111111111",
		"email":      "a@b.com",
		"first_name": "Ann",
		"last_name":  "Lee",
		"password":   "longpassword",
	}
}

func signupUser(t *testing.T, router *gin.Engine) map[string]any {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/signup", signupBody())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return dataObject(t, rec)
}
