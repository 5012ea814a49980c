package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return NewService(DefaultAccounts(), "test-secret")
}

func TestAuthenticate(t *testing.T) {
	service := newTestService()

	tests := []struct {
		name     string
		username string
		password string
		wantErr  bool
		wantRole string
	}{
		{
			name:     "admin with correct password",
			username: "admin",
			password: "admin123",
			wantRole: "admin",
		},
		{
			name:     "hr manager with correct password",
			username: "hr_manager",
			password: "admin",
			wantRole: "hr_manager",
		},
		{
			name:     "financial analyst with correct password",
			username: "financial",
			password: "finance123",
			wantRole: "financial",
		},
		{
			name:     "wrong password",
			username: "admin",
			password: "wrong",
			wantErr:  true,
		},
		{
			name:     "unknown user",
			username: "nobody",
			password: "admin123",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := service.Authenticate(tt.username, tt.password)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, session)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.username, session.Username)
			assert.Equal(t, tt.wantRole, session.Role)
		})
	}
}

func TestFinancialRolePermissions(t *testing.T) {
	accounts := DefaultAccounts()

	financial := accounts["financial"]
	assert.True(t, financial.HasPermission(PermissionFinancial))
	assert.False(t, financial.HasPermission(PermissionAssessment))
	assert.False(t, financial.HasPermission(PermissionDashboard))

	admin := accounts["admin"]
	assert.True(t, admin.HasPermission(PermissionAssessment))
	assert.True(t, admin.HasPermission(PermissionFinancial))
	assert.True(t, admin.HasPermission(PermissionDashboard))
}

func TestTokenRoundTrip(t *testing.T) {
	service := newTestService()

	session, err := service.Authenticate("hr_manager", "admin")
	require.NoError(t, err)

	token, err := service.GenerateToken(session)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	restored, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, session.Username, restored.Username)
	assert.Equal(t, session.Role, restored.Role)
	assert.ElementsMatch(t, session.Permissions, restored.Permissions)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	service := newTestService()
	other := NewService(DefaultAccounts(), "different-secret")

	session, err := service.Authenticate("admin", "admin123")
	require.NoError(t, err)

	token, err := other.GenerateToken(session)
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.Error(t, err)

	_, err = service.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestRequireAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := newTestService()

	router := gin.New()
	router.GET("/protected", RequireAuth(service), func(c *gin.Context) {
		session, ok := SessionFrom(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"username": session.Username})
	})

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Basic abc123")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		session, err := service.Authenticate("admin", "admin123")
		require.NoError(t, err)
		token, err := service.GenerateToken(session)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "admin")
	})
}

func TestRequirePermissionMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := newTestService()

	router := gin.New()
	router.GET("/assess", RequireAuth(service), RequirePermission(PermissionAssessment), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	tokenFor := func(t *testing.T, username, password string) string {
		t.Helper()
		session, err := service.Authenticate(username, password)
		require.NoError(t, err)
		token, err := service.GenerateToken(session)
		require.NoError(t, err)
		return token
	}

	t.Run("financial role is forbidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/assess", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, "financial", "finance123"))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("hr manager is allowed", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/assess", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, "hr_manager", "admin"))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
