package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/talentops/attrition-insight/internal/auth"
	apperrors "github.com/talentops/attrition-insight/internal/errors"
	"github.com/talentops/attrition-insight/internal/finance"
	"github.com/talentops/attrition-insight/internal/history"
	"github.com/talentops/attrition-insight/internal/inference"
	"github.com/talentops/attrition-insight/internal/monitoring"
	"github.com/talentops/attrition-insight/internal/profiles"
	"github.com/talentops/attrition-insight/internal/types"
)

const version = "1.0.0"

// server bundles the components behind the API handlers.
type server struct {
	engine     *inference.Engine
	calculator *finance.Calculator
	authSvc    *auth.Service
	store      *history.Store
	metrics    *monitoring.Metrics
	logger     *monitoring.Logger
}

// handleLogin godoc
// @Summary Authenticate and obtain a session token
// @Accept json
// @Produce json
// @Param request body types.LoginRequest true "Credentials"
// @Success 200 {object} types.LoginResponse
// @Failure 401 {object} errors.AppError
// @Router /api/login [post]
func (s *server) handleLogin(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Abort(c, apperrors.NewValidationError("Invalid login request", err.Error()))
		return
	}

	session, err := s.authSvc.Authenticate(req.Username, req.Password)
	if err != nil {
		apperrors.Abort(c, apperrors.NewUnauthorizedError("Invalid username or password"))
		return
	}

	token, err := s.authSvc.GenerateToken(session)
	if err != nil {
		apperrors.Abort(c, apperrors.NewInternalError("Failed to issue session token", err))
		return
	}

	c.JSON(http.StatusOK, types.LoginResponse{
		Token:       token,
		Username:    session.Username,
		Role:        session.Role,
		Permissions: session.Permissions,
		DisplayName: session.DisplayName,
	})
}

// handleAssess godoc
// @Summary Score one employee's attrition risk
// @Accept json
// @Produce json
// @Param request body types.AssessRequest true "Employee attributes"
// @Success 200 {object} types.AssessResponse
// @Failure 400 {object} errors.AppError
// @Router /api/assess [post]
func (s *server) handleAssess(c *gin.Context) {
	var req types.AssessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Abort(c, apperrors.NewValidationError("Invalid assessment request", err.Error()))
		return
	}

	for name := range req.Attributes {
		if !inference.KnownAttribute(name) {
			s.logger.Debug("Ignoring unknown attribute", "attribute", name)
		}
	}

	s.assess(c, inference.NewAttributeSet(req.Attributes), req.Department)
}

// handleAssessProfile scores one of the built-in example profiles.
func (s *server) handleAssessProfile(c *gin.Context) {
	name := c.Param("name")
	profile, ok := profiles.Get(name)
	if !ok {
		apperrors.Abort(c, apperrors.NewValidationError("Unknown profile: "+name))
		return
	}

	s.assess(c, inference.NewAttributeSet(profile.Attributes), "")
}

func (s *server) assess(c *gin.Context, attrs inference.AttributeSet, department string) {
	start := time.Now()

	pred, err := s.engine.Score(attrs)
	if err != nil {
		apperrors.Abort(c, apperrors.NewInferenceError("Risk scoring failed", err))
		return
	}

	username := ""
	if session, ok := auth.SessionFrom(c); ok {
		username = session.Username
	}

	mode := s.engine.Mode()
	riskLevel := pred.RiskLevel()

	id, err := s.store.SaveAssessment(username, department, riskLevel, pred.LeaveProbability, pred.WillLeave, mode)
	if err != nil {
		// Scoring succeeded; a persistence failure is logged but does
		// not fail the request.
		s.logger.Error("Failed to persist assessment", "error", err)
	}

	s.metrics.IncrementAssessment(mode == "fallback")
	s.logger.AssessmentLogger(username, department, riskLevel, mode, pred.LeaveProbability, time.Since(start))

	c.JSON(http.StatusOK, types.AssessResponse{
		WillLeave:        pred.WillLeave,
		StayProbability:  pred.StayProbability,
		LeaveProbability: pred.LeaveProbability,
		RiskLevel:        riskLevel,
		Mode:             mode,
		Department:       department,
		AssessmentID:     id,
	})
}

// handleProfiles lists the built-in example profiles.
func (s *server) handleProfiles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"profiles": profiles.All()})
}

// handleCost godoc
// @Summary Compute the per-employee attrition cost breakdown
// @Accept json
// @Produce json
// @Param request body types.CostRequest true "Cost parameters"
// @Success 200 {object} finance.CostBreakdown
// @Failure 400 {object} errors.AppError
// @Router /api/financial/cost [post]
func (s *server) handleCost(c *gin.Context) {
	var req types.CostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Abort(c, apperrors.NewValidationError("Invalid cost request", err.Error()))
		return
	}

	breakdown, err := s.calculator.AttritionCost(req.AnnualSalary, req.Region, req.Currency, req.Overrides)
	if err != nil {
		apperrors.Abort(c, apperrors.NewValidationError(err.Error()))
		return
	}

	s.metrics.IncrementFinancial()
	if session, ok := auth.SessionFrom(c); ok {
		s.logger.FinancialLogger(session.Username, "cost", breakdown.Region, breakdown.Currency, breakdown.TotalCost)
	}

	c.JSON(http.StatusOK, breakdown)
}

// handleSavings godoc
// @Summary Project annual savings from attrition prevention
// @Accept json
// @Produce json
// @Param request body types.SavingsRequest true "Savings parameters"
// @Success 200 {object} finance.SavingsProjection
// @Failure 400 {object} errors.AppError
// @Router /api/financial/savings [post]
func (s *server) handleSavings(c *gin.Context) {
	var req types.SavingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Abort(c, apperrors.NewValidationError("Invalid savings request", err.Error()))
		return
	}

	accuracy := req.ModelAccuracyPercent
	if accuracy <= 0 {
		accuracy = s.engine.Metadata().TestAccuracy * 100
	}
	effectiveness := req.EffectivenessPercent
	if effectiveness <= 0 {
		effectiveness = 30
	}

	projection, err := s.calculator.AnnualSavings(req.TotalEmployees, req.AttritionRatePercent,
		req.AverageSalary, accuracy, effectiveness, req.Region, req.Currency)
	if err != nil {
		apperrors.Abort(c, apperrors.NewValidationError(err.Error()))
		return
	}

	s.metrics.IncrementFinancial()
	if session, ok := auth.SessionFrom(c); ok {
		s.logger.FinancialLogger(session.Username, "savings", projection.Region, projection.Currency, projection.AnnualSavings)
	}

	c.JSON(http.StatusOK, projection)
}

// handleReference returns the static financial tables: cost components,
// regional configurations and exchange rates.
func (s *server) handleReference(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"components":     s.calculator.Components(),
		"regions":        s.calculator.Regions(),
		"exchange_rates": s.calculator.Rates(),
	})
}

// handleDashboard godoc
// @Summary Aggregate assessment statistics
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/dashboard [get]
func (s *server) handleDashboard(c *gin.Context) {
	stats, err := s.store.GetUsageStats()
	if err != nil {
		apperrors.Abort(c, apperrors.NewInternalError("Failed to load usage statistics", err))
		return
	}

	departments, err := s.store.GetDepartmentRisk()
	if err != nil {
		apperrors.Abort(c, apperrors.NewInternalError("Failed to load department risk", err))
		return
	}

	recent, err := s.store.RecentAssessments(20)
	if err != nil {
		apperrors.Abort(c, apperrors.NewInternalError("Failed to load recent assessments", err))
		return
	}

	meta := s.engine.Metadata()
	c.JSON(http.StatusOK, gin.H{
		"usage":       stats,
		"departments": departments,
		"recent":      recent,
		"model": gin.H{
			"mode":          s.engine.Mode(),
			"model_type":    meta.ModelType,
			"test_accuracy": meta.TestAccuracy,
			"roc_auc":       meta.ROCAUC,
		},
	})
}

// handleHealth reports liveness and the active scoring mode.
func (s *server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, types.HealthResponse{
		Status:    "ok",
		Mode:      s.engine.Mode(),
		ModelType: s.engine.Metadata().ModelType,
		Version:   version,
	})
}

// handleMetrics exposes application counters.
func (s *server) handleMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, s.metrics.GetStats())
}
