package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"vintrack/internal/auth"
	"vintrack/tests/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware(t *testing.T) {
	cfg := testutils.GetTestConfig()
	mw := NewMiddleware(cfg)
	authHandlers := auth.NewAuthHandlers(cfg)

	var seenUserID string
	protected := mw.AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		require.True(t, ok)
		seenUserID = userID
		w.WriteHeader(http.StatusOK)
	})

	t.Run("RejectsMissingToken", func(t *testing.T) {
		rec := httptest.NewRecorder()
		protected(rec, httptest.NewRequest("GET", "/api/vins", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("RejectsMalformedToken", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/vins", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()
		protected(rec, req)
		assert.NotEqual(t, http.StatusOK, rec.Code)
	})

	t.Run("AcceptsValidTokenAndInjectsUserID", func(t *testing.T) {
		token, err := authHandlers.GenerateJWT("test_admin", "test_admin")
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/vins", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		protected(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "test_admin", seenUserID)
	})
}

func TestUserIDFromContext(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)

	_, ok := UserIDFromContext(req.Context())
	assert.False(t, ok)

	ctx := WithUserID(req.Context(), "user-1")
	userID, ok := UserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "user-1", userID)
}
