package rbac_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-workforce/internal/rbac"
	rbacMock "go-workforce/internal/rbac/mock"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupRBACRouter(svc rbac.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", uuid.New().String())
		c.Next()
	})

	h := rbac.NewHandler(svc)
	r.GET("/rbac/me", h.Me)
	r.POST("/rbac/assign", h.AssignRole)
	r.GET("/rbac/roles/:role/permissions", h.ListRolePermissions)
	return r
}

func TestHandler_Me(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := rbacMock.NewMockService(ctrl)
	router := setupRBACRouter(mockSvc)

	mockSvc.EXPECT().
		ResolveAccess(gomock.Any(), gomock.Any()).
		Return(&rbac.Access{
			Roles: []rbac.ResolvedRole{
				{Kind: rbac.RoleKindSystem, Label: "admin"},
			},
			Permissions: []rbac.PermissionPair{
				{Module: "users", Action: "view"},
			},
		}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/rbac/me", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["ok"])

	data := resp["data"].(map[string]any)
	assert.Equal(t, true, data["is_admin"])
	assert.Equal(t, false, data["allow_all"])
}

func TestHandler_AssignRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := rbacMock.NewMockService(ctrl)
	router := setupRBACRouter(mockSvc)

	t.Run("System Role", func(t *testing.T) {
		targetID := uuid.New().String()
		var assignedRef rbac.RoleRef

		mockSvc.EXPECT().
			AssignRole(gomock.Any(), gomock.Any(), targetID, gomock.Any()).
			DoAndReturn(func(_ any, _ string, _ string, ref rbac.RoleRef) error {
				assignedRef = ref
				return nil
			})

		body, _ := json.Marshal(gin.H{
			"user_id": targetID,
			"role":    gin.H{"kind": "system", "role": "manager"},
		})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/rbac/assign", bytes.NewBuffer(body))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, rbac.RoleKindSystem, assignedRef.Kind)
		assert.Equal(t, rbac.RoleManager, assignedRef.System)
	})

	t.Run("Unknown Role Skips Service", func(t *testing.T) {
		body, _ := json.Marshal(gin.H{
			"user_id": uuid.New().String(),
			"role":    gin.H{"kind": "system", "role": "warlord"},
		})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/rbac/assign", bytes.NewBuffer(body))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_RoleRefFromPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := rbacMock.NewMockService(ctrl)
	router := setupRBACRouter(mockSvc)

	t.Run("Custom Role ID", func(t *testing.T) {
		customID := uuid.New()
		mockSvc.EXPECT().
			ListRolePermissions(gomock.Any(), rbac.CustomRoleRef(customID)).
			Return([]rbac.PermissionResponse{}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/rbac/roles/"+customID.String()+"/permissions", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Garbage Role Param", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/rbac/roles/not-a-role/permissions", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
