package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"minifacebook/internal/database"
	"minifacebook/internal/middleware"
	"minifacebook/internal/pkg/jwt"
	"minifacebook/internal/repository"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, *jwt.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	tokens := jwt.New("test-secret", time.Hour)
	svc := NewService(repository.NewUserRepository(db), tokens)
	svc.cost = bcrypt.MinCost
	h := NewHandler(svc)

	r := gin.New()
	api := r.Group("/api")
	h.RegisterPublicRoutes(api)
	protected := api.Group("")
	protected.Use(middleware.JWTAuth(tokens))
	h.RegisterProtectedRoutes(protected)
	return r, tokens
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any, token string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w, out
}

func TestHandler_RegisterLoginMe(t *testing.T) {
	r, tokens := setupAuthRouter(t)

	w, body := doJSON(t, r, http.MethodPost, "/api/register", gin.H{
		"username":  "alice",
		"email":     "alice@example.com",
		"password":  "secret1",
		"full_name": "Alice A",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, true, body["success"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "alice", user["username"])
	assert.NotContains(t, user, "password_hash")
	assert.NotContains(t, user, "password")

	claims, err := tokens.ValidateToken(body["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)

	// Login by email works as well as by username.
	w, body = doJSON(t, r, http.MethodPost, "/api/login", gin.H{"username": "alice@example.com", "password": "secret1"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token := body["token"].(string)

	w, body = doJSON(t, r, http.MethodGet, "/api/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice@example.com", body["user"].(map[string]any)["email"])
}

func TestHandler_Register_Duplicate(t *testing.T) {
	r, _ := setupAuthRouter(t)

	payload := gin.H{"username": "alice", "email": "alice@example.com", "password": "secret1"}
	w, first := doJSON(t, r, http.MethodPost, "/api/register", payload, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w, body := doJSON(t, r, http.MethodPost, "/api/register", gin.H{
		"username": "alice", "email": "other@example.com", "password": "secret1",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "USER_EXISTS", body["code"])

	w, body = doJSON(t, r, http.MethodPost, "/api/register", gin.H{
		"username": "alice2", "email": "ALICE@example.com", "password": "secret1",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "USER_EXISTS", body["code"])

	// The first account's token is unaffected by the rejected attempts.
	w, body = doJSON(t, r, http.MethodGet, "/api/me", nil, first["token"].(string))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", body["user"].(map[string]any)["username"])
}

func TestHandler_Register_Validation(t *testing.T) {
	r, _ := setupAuthRouter(t)

	cases := map[string]gin.H{
		"missing password": {"username": "alice", "email": "alice@example.com"},
		"bad email":        {"username": "alice", "email": "nope", "password": "secret1"},
		"short username":   {"username": "al", "email": "alice@example.com", "password": "secret1"},
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			w, body := doJSON(t, r, http.MethodPost, "/api/register", payload, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, "VALIDATION_ERROR", body["code"])
		})
	}
}

func TestHandler_Login_UniformFailure(t *testing.T) {
	r, _ := setupAuthRouter(t)
	doJSON(t, r, http.MethodPost, "/api/register", gin.H{
		"username": "alice", "email": "alice@example.com", "password": "secret1",
	}, "")

	w1, b1 := doJSON(t, r, http.MethodPost, "/api/login", gin.H{"username": "alice", "password": "wrong"}, "")
	w2, b2 := doJSON(t, r, http.MethodPost, "/api/login", gin.H{"username": "ghost", "password": "secret1"}, "")

	assert.Equal(t, http.StatusUnauthorized, w1.Code)
	assert.Equal(t, w1.Code, w2.Code)
	assert.Equal(t, b1, b2)

	w, _ := doJSON(t, r, http.MethodPost, "/api/login", gin.H{"password": "secret1"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Me_RequiresToken(t *testing.T) {
	r, _ := setupAuthRouter(t)

	w, _ := doJSON(t, r, http.MethodGet, "/api/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/api/me", nil, "garbage")
	assert.Equal(t, http.StatusForbidden, w.Code)
}
