package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"financial-twin/internal/api/models"
	"financial-twin/internal/assessment"
	"financial-twin/internal/model"
	"financial-twin/internal/scoring"
	"financial-twin/internal/storage"
)

const explainTopN = 10

// LoanHandler handles loan assessment requests.
type LoanHandler struct {
	svc   *assessment.Service
	model *scoring.Model
	repo  *storage.Repository // nil when persistence is disabled
	log   *logrus.Logger
}

// NewLoanHandler creates a new loan handler. repo may be nil.
func NewLoanHandler(svc *assessment.Service, m *scoring.Model, repo *storage.Repository, log *logrus.Logger) *LoanHandler {
	return &LoanHandler{svc: svc, model: m, repo: repo, log: log}
}

// Assess handles POST /api/v1/loan/assess.
func (h *LoanHandler) Assess(c *gin.Context) {
	profile, ok := bindProfile(c)
	if !ok {
		return
	}

	result, err := h.svc.Assess(profile)
	if err != nil {
		writeAssessmentError(c, err)
		return
	}

	// Persistence is best-effort: a storage failure never fails the request.
	if h.repo != nil {
		if _, err := h.repo.Save(result); err != nil {
			h.log.Warnf("failed to persist assessment: %v", err)
		}
	}

	c.JSON(http.StatusOK, result)
}

// QuickScore handles POST /api/v1/loan/quick-score.
func (h *LoanHandler) QuickScore(c *gin.Context) {
	profile, ok := bindProfile(c)
	if !ok {
		return
	}

	result, err := h.svc.QuickScore(profile)
	if err != nil {
		writeAssessmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Explain handles POST /api/v1/loan/explain.
func (h *LoanHandler) Explain(c *gin.Context) {
	profile, ok := bindProfile(c)
	if !ok {
		return
	}

	result, err := h.svc.Explain(profile, explainTopN)
	if err != nil {
		writeAssessmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ModelInfo handles GET /api/v1/loan/model-info.
func (h *LoanHandler) ModelInfo(c *gin.Context) {
	info := models.ModelInfoResponse{
		ModelLoaded: h.model.Loaded(),
	}
	if h.model.Loaded() {
		info.ModelName = h.model.Name()
		info.Features = h.model.FeatureNames()
		info.FeatureCount = len(info.Features)
	}
	c.JSON(http.StatusOK, info)
}

func bindProfile(c *gin.Context) (*model.Profile, bool) {
	var profile model.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return nil, false
	}
	return &profile, true
}

// writeAssessmentError maps the assessment error taxonomy to HTTP statuses:
// input errors are the caller's fault, a missing model is a service
// availability problem, anything else is internal.
func writeAssessmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, assessment.ErrInvalidProfile):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_PROFILE",
				Message: err.Error(),
			},
		})
	case errors.Is(err, scoring.ErrModelNotLoaded):
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "MODEL_NOT_LOADED",
				Message: err.Error(),
			},
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "ASSESSMENT_ERROR",
				Message: err.Error(),
			},
		})
	}
}
