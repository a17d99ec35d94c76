package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"user-posts-api/internal/auth"
	"user-posts-api/internal/repository"
	"user-posts-api/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *repository.UserRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	users := repository.NewUserRepository(db)

	h := NewAuthHandler(users)
	r := gin.New()
	r.POST("/api/signup", h.Signup)
	r.POST("/api/login", h.Login)
	return r, users
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSignup_ThenDuplicate(t *testing.T) {
	r, _ := newAuthRouter(t)

	creds := map[string]string{"email": "a@b.com", "password": "Abc12345!"}

	w := postJSON(t, r, "/api/signup", creds)
	require.Equal(t, http.StatusCreated, w.Code)

	// same email again is rejected
	w = postJSON(t, r, "/api/signup", creds)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignup_PasswordPolicy(t *testing.T) {
	r, _ := newAuthRouter(t)

	for _, password := range []string{
		"short1!",     // too short
		"abc12345!",   // no uppercase
		"ABC12345!",   // no lowercase
		"Abcdefgh!",   // no digit
		"Abc123456",   // no special character
	} {
		w := postJSON(t, r, "/api/signup", map[string]string{
			"email":    "a@b.com",
			"password": password,
		})
		require.Equal(t, http.StatusBadRequest, w.Code, "password %q should be rejected", password)
	}
}

func TestLogin_IssuesVerifiableToken(t *testing.T) {
	r, _ := newAuthRouter(t)

	w := postJSON(t, r, "/api/signup", map[string]string{"email": "a@b.com", "password": "Abc12345!"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, r, "/api/login", map[string]string{"email": "a@b.com", "password": "Abc12345!"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "bearer", resp.TokenType)

	claims, err := auth.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "a@b.com", claims.Email)
}

func TestLogin_UniformRejection(t *testing.T) {
	r, _ := newAuthRouter(t)

	w := postJSON(t, r, "/api/signup", map[string]string{"email": "a@b.com", "password": "Abc12345!"})
	require.Equal(t, http.StatusCreated, w.Code)

	// wrong password
	w = postJSON(t, r, "/api/login", map[string]string{"email": "a@b.com", "password": "Wrong123!"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	wrongPassword := w.Body.String()

	// unknown email gets the same body
	w = postJSON(t, r, "/api/login", map[string]string{"email": "nobody@b.com", "password": "Abc12345!"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, wrongPassword, w.Body.String())
}
