package user

import (
	"errors"
	"net/http"
	"strconv"

	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// legacyFromError membalas 200 ok=false, kontrak lama delete-user/update-email.
func legacyFromError(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		response.LegacyError(c, appErr.Code, appErr.Message)
		return
	}
	response.LegacyError(c, apperror.CodeInternalError, "An unexpected error occurred")
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	search := c.Query("search")

	users, total, err := h.service.List(c.Request.Context(), page, limit, search)
	if err != nil {
		response.FromError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page, limit)
	response.Success(c, http.StatusOK, users, &meta)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	actorID := c.GetString("user_id")
	resp, err := h.service.Create(c.Request.Context(), actorID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	var req DeleteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		legacyFromError(c, apperror.MapValidationError(err))
		return
	}

	actorID := c.GetString("user_id")
	if err := h.service.Delete(c.Request.Context(), actorID, req.UserID); err != nil {
		legacyFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"success": true}, nil)
}

func (h *Handler) UpdateEmail(c *gin.Context) {
	var req UpdateEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		legacyFromError(c, apperror.MapValidationError(err))
		return
	}

	actorID := c.GetString("user_id")
	resp, err := h.service.UpdateEmail(c.Request.Context(), actorID, req)
	if err != nil {
		legacyFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"success": true, "user": resp}, nil)
}

func (h *Handler) ToggleStatus(c *gin.Context) {
	var req ToggleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	actorID := c.GetString("user_id")
	userID := c.Param("id")
	if err := h.service.ToggleStatus(c.Request.Context(), actorID, userID, *req.IsActive); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"isActive": *req.IsActive}, nil)
}

func (h *Handler) Invite(c *gin.Context) {
	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	actorID := c.GetString("user_id")
	resp, err := h.service.Invite(c.Request.Context(), actorID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ListInvitations(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	invitations, total, err := h.service.ListInvitations(c.Request.Context(), page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page, limit)
	response.Success(c, http.StatusOK, invitations, &meta)
}

func (h *Handler) RevokeInvitation(c *gin.Context) {
	actorID := c.GetString("user_id")
	if err := h.service.RevokeInvitation(c.Request.Context(), actorID, c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"revoked": true}, nil)
}
