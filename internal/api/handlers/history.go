package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"financial-twin/internal/api/models"
	"financial-twin/internal/storage"
)

// HistoryHandler serves persisted assessment history.
type HistoryHandler struct {
	repo *storage.Repository
	log  *logrus.Logger
}

func NewHistoryHandler(repo *storage.Repository, log *logrus.Logger) *HistoryHandler {
	return &HistoryHandler{repo: repo, log: log}
}

// List handles GET /api/v1/assessments?limit=N.
func (h *HistoryHandler) List(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "INVALID_REQUEST",
					Message: "limit must be a positive integer",
				},
			})
			return
		}
		limit = n
	}

	records, err := h.repo.Recent(limit)
	if err != nil {
		h.log.Errorf("failed to list assessments: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "STORAGE_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.HistoryResponse{Assessments: records})
}
