package handler

import (
	"net/http"
	"time"

	"coinvest/internal/cache"
	"coinvest/internal/middleware"
	"coinvest/internal/models"
	"coinvest/internal/repository"
	"coinvest/internal/service"

	"github.com/gin-gonic/gin"
)

type InvestmentHandler struct {
	investmentSvc  *service.InvestmentService
	investmentRepo *repository.InvestmentRepository
	planRepo       *repository.PlanRepository
	cache          *cache.Cache
}

func NewInvestmentHandler(
	investmentSvc *service.InvestmentService,
	investmentRepo *repository.InvestmentRepository,
	planRepo *repository.PlanRepository,
	c *cache.Cache,
) *InvestmentHandler {
	return &InvestmentHandler{
		investmentSvc:  investmentSvc,
		investmentRepo: investmentRepo,
		planRepo:       planRepo,
		cache:          c,
	}
}

// ListPlans returns active plans, briefly cached.
func (h *InvestmentHandler) ListPlans(c *gin.Context) {
	var cached []models.InvestmentPlan
	if h.cache.Get(c.Request.Context(), cache.KeyActivePlans, &cached) {
		c.JSON(http.StatusOK, gin.H{"plans": cached})
		return
	}
	plans, err := h.planRepo.ListActive()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.cache.Set(c.Request.Context(), cache.KeyActivePlans, plans, time.Minute)
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

// Invest handles POST /user/invest: debits principal and opens an
// investment on the chosen plan.
func (h *InvestmentHandler) Invest(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		PlanID uint    `json:"plan_id" binding:"required"`
		Amount float64 `json:"amount" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	inv, user, err := h.investmentSvc.Start(userID, req.PlanID, req.Amount)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.cache.Delete(c.Request.Context(), cache.KeyUserDashboard(userID), cache.KeyAdminStats)
	c.JSON(http.StatusCreated, gin.H{
		"investment":    inv,
		"total_balance": user.TotalBalance,
	})
}

func (h *InvestmentHandler) ListMine(c *gin.Context) {
	limit, offset := parseLimitOffset(c)
	list, err := h.investmentRepo.ListByUser(middleware.GetUserID(c), limit, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"investments": list})
}
