package activitylog

import (
	"net/http"
	"strconv"

	"go-workforce/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type LogResponse struct {
	ID          string `json:"id"`
	Seq         int64  `json:"seq"`
	UserID      string `json:"user_id,omitempty"`
	PerformedBy string `json:"performed_by,omitempty"`
	ActionType  string `json:"action_type"`
	Description string `json:"description,omitempty"`
	Module      string `json:"module,omitempty"`
	Target      string `json:"target,omitempty"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 25
	}
	offset := (page - 1) * limit

	userID := c.Query("user_id")

	var (
		rows  []ActivityLog
		total int64
		err   error
	)
	if userID != "" {
		rows, total, err = h.repo.ListByUser(c.Request.Context(), userID, limit, offset)
	} else {
		rows, total, err = h.repo.ListRecent(c.Request.Context(), limit, offset)
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch activity logs", nil)
		return
	}

	resp := make([]LogResponse, 0, len(rows))
	for _, row := range rows {
		item := LogResponse{
			ID:          row.ID.String(),
			Seq:         row.Seq,
			ActionType:  row.ActionType,
			Description: row.Description,
			Module:      row.Module,
			Target:      row.Target,
			Status:      row.Status,
			CreatedAt:   row.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if row.UserID != nil {
			item.UserID = row.UserID.String()
		}
		if row.PerformedBy != nil {
			item.PerformedBy = row.PerformedBy.String()
		}
		resp = append(resp, item)
	}

	meta := response.NewPaginationMeta(total, page, limit)
	response.Success(c, http.StatusOK, resp, &meta)
}
