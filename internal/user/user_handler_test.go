package user_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-workforce/internal/user"
	usererrors "go-workforce/internal/user/errors"
	userMock "go-workforce/internal/user/mock"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupUserRouter(svc user.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", uuid.New().String())
		c.Next()
	})

	h := user.NewHandler(svc)
	r.GET("/users", h.List)
	r.POST("/users", h.Create)
	r.POST("/users/delete", h.Delete)
	r.POST("/users/update-email", h.UpdateEmail)
	return r
}

func TestHandler_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := userMock.NewMockService(ctrl)
	router := setupUserRouter(mockSvc)

	t.Run("Created", func(t *testing.T) {
		mockSvc.EXPECT().
			Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(user.UserResponse{ID: uuid.New().String(), Email: "siti@example.com", IsActive: true}, nil)

		body, _ := json.Marshal(gin.H{"email": "siti@example.com", "password": "password123", "fullName": "Siti"})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/users", bytes.NewBuffer(body))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp map[string]any
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, true, resp["ok"])
	})

	t.Run("Duplicate Email Returns 409", func(t *testing.T) {
		mockSvc.EXPECT().
			Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(user.UserResponse{}, usererrors.ErrEmailTaken)

		body, _ := json.Marshal(gin.H{"email": "siti@example.com", "password": "password123", "fullName": "Siti"})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/users", bytes.NewBuffer(body))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)

		var resp map[string]any
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, false, resp["ok"])
		errObj := resp["error"].(map[string]any)
		assert.Equal(t, "CONFLICT", errObj["code"])
	})

	t.Run("Invalid Body Skips Service", func(t *testing.T) {
		body, _ := json.Marshal(gin.H{"email": "bukan-email", "password": "x"})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/users", bytes.NewBuffer(body))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// Endpoint lama membalas 200 dengan ok=false, klien lama hanya membaca body.
func TestHandler_Delete_LegacyContract(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := userMock.NewMockService(ctrl)
	router := setupUserRouter(mockSvc)

	t.Run("Success", func(t *testing.T) {
		targetID := uuid.New().String()
		mockSvc.EXPECT().
			Delete(gomock.Any(), gomock.Any(), targetID).
			Return(nil)

		body, _ := json.Marshal(gin.H{"userId": targetID})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/users/delete", bytes.NewBuffer(body))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, true, resp["ok"])
		assert.Equal(t, true, resp["data"].(map[string]any)["success"])
	})

	t.Run("Not Found Still 200", func(t *testing.T) {
		targetID := uuid.New().String()
		mockSvc.EXPECT().
			Delete(gomock.Any(), gomock.Any(), targetID).
			Return(usererrors.ErrUserNotFound)

		body, _ := json.Marshal(gin.H{"userId": targetID})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/users/delete", bytes.NewBuffer(body))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, false, resp["ok"])
		errObj := resp["error"].(map[string]any)
		assert.Equal(t, "NOT_FOUND", errObj["code"])
	})
}

func TestHandler_UpdateEmail_LegacyContract(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := userMock.NewMockService(ctrl)
	router := setupUserRouter(mockSvc)

	targetID := uuid.New().String()
	payload := gin.H{
		"userId":   targetID,
		"oldEmail": "siti@example.com",
		"newEmail": "siti.rahayu@example.com",
	}

	t.Run("Conflict Still 200", func(t *testing.T) {
		mockSvc.EXPECT().
			UpdateEmail(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(user.UserResponse{}, usererrors.ErrEmailTaken)

		body, _ := json.Marshal(payload)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/users/update-email", bytes.NewBuffer(body))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, false, resp["ok"])
	})

	t.Run("Success", func(t *testing.T) {
		mockSvc.EXPECT().
			UpdateEmail(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(user.UserResponse{ID: targetID, Email: "siti.rahayu@example.com"}, nil)

		body, _ := json.Marshal(payload)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/users/update-email", bytes.NewBuffer(body))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, true, resp["ok"])
		assert.Equal(t, true, resp["data"].(map[string]any)["success"])
	})
}
