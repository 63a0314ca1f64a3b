package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"expenza/internal/models"
	"expenza/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupThenLogin(t *testing.T) {
	r, _ := newTestRouter(t)

	token := signup(t, r, "a@x.com", "secret1")
	require.NotEmpty(t, token)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "a@x.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)

	// the token resolves to the user that created it
	claims, err := util.ParseToken("test-secret", resp.Token)
	require.NoError(t, err)
	assert.NotZero(t, claims.UserID)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	r, db := newTestRouter(t)

	signup(t, r, "a@x.com", "secret1")

	w := doJSON(t, r, http.MethodPost, "/api/auth/signup", "", gin.H{
		"email":    "a@x.com",
		"password": "another1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "email already exists")

	// the store still holds exactly one user for that email
	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", "a@x.com").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSignup_InvalidInput(t *testing.T) {
	r, _ := newTestRouter(t)

	cases := []gin.H{
		{"email": "", "password": "secret1"},
		{"email": "not-an-email", "password": "secret1"},
		{"email": "a@x.com", "password": ""},
		{"email": "a@x.com", "password": "short"},
	}
	for _, body := range cases {
		w := doJSON(t, r, http.MethodPost, "/api/auth/signup", "", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %v", body)
	}
}

func TestLogin_InvalidCredentialsIndistinguishable(t *testing.T) {
	r, _ := newTestRouter(t)

	signup(t, r, "a@x.com", "secret1")

	wrongPassword := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "a@x.com",
		"password": "wrong-password",
	})
	unknownEmail := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "nobody@x.com",
		"password": "secret1",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	// identical bodies, so registered emails cannot be probed
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestProtectedRoutes_RejectBadTokens(t *testing.T) {
	r, _ := newTestRouter(t)

	// no token
	w := doJSON(t, r, http.MethodGet, "/api/expenses", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// malformed token
	w = doJSON(t, r, http.MethodGet, "/api/expenses", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// token signed with a different key
	forged, err := util.GenerateToken("other-secret", "expenza-test", 1, time.Hour)
	require.NoError(t, err)
	w = doJSON(t, r, http.MethodGet, "/api/expenses", forged, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutes_RejectExpiredToken(t *testing.T) {
	r, db := newTestRouter(t)

	signup(t, r, "a@x.com", "secret1")

	var user models.User
	require.NoError(t, db.Where("email = ?", "a@x.com").First(&user).Error)

	expired, err := util.GenerateToken("test-secret", "expenza-test", user.ID, time.Nanosecond)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)

	w := doJSON(t, r, http.MethodGet, "/api/expenses", expired, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetMe(t *testing.T) {
	r, _ := newTestRouter(t)

	token := signup(t, r, "me@x.com", "secret1")

	w := doJSON(t, r, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		ID    uint   `json:"id"`
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "me@x.com", resp.Email)
	assert.NotZero(t, resp.ID)
}
