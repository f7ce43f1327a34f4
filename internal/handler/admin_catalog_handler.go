package handler

import (
	"net/http"

	"coinvest/internal/cache"
	"coinvest/internal/models"
	"coinvest/internal/repository"

	"github.com/gin-gonic/gin"
)

// AdminCatalogHandler manages investment plans and deposit wallet
// addresses.
type AdminCatalogHandler struct {
	planRepo   *repository.PlanRepository
	walletRepo *repository.WalletRepository
	cache      *cache.Cache
}

func NewAdminCatalogHandler(planRepo *repository.PlanRepository, walletRepo *repository.WalletRepository, c *cache.Cache) *AdminCatalogHandler {
	return &AdminCatalogHandler{planRepo: planRepo, walletRepo: walletRepo, cache: c}
}

type planRequest struct {
	Name          string   `json:"name" binding:"required"`
	MinAmount     float64  `json:"min_amount" binding:"required,gt=0"`
	MaxAmount     *float64 `json:"max_amount"`
	ProfitRate    float64  `json:"profit_rate" binding:"required,gt=0"`
	DurationHours int      `json:"duration_hours" binding:"required,gt=0"`
	IsActive      *bool    `json:"is_active"`
}

func (h *AdminCatalogHandler) ListPlans(c *gin.Context) {
	plans, err := h.planRepo.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

func (h *AdminCatalogHandler) CreatePlan(c *gin.Context) {
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.MaxAmount != nil && *req.MaxAmount < req.MinAmount {
		c.JSON(http.StatusBadRequest, gin.H{"error": "max_amount below min_amount"})
		return
	}
	p := &models.InvestmentPlan{
		Name:          req.Name,
		MinAmount:     req.MinAmount,
		MaxAmount:     req.MaxAmount,
		ProfitRate:    req.ProfitRate,
		DurationHours: req.DurationHours,
		IsActive:      req.IsActive == nil || *req.IsActive,
	}
	if err := h.planRepo.Create(p); err != nil {
		respondServiceError(c, err)
		return
	}
	h.cache.Delete(c.Request.Context(), cache.KeyActivePlans)
	c.JSON(http.StatusCreated, p)
}

func (h *AdminCatalogHandler) UpdatePlan(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	p, err := h.planRepo.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.MaxAmount != nil && *req.MaxAmount < req.MinAmount {
		c.JSON(http.StatusBadRequest, gin.H{"error": "max_amount below min_amount"})
		return
	}
	p.Name = req.Name
	p.MinAmount = req.MinAmount
	p.MaxAmount = req.MaxAmount
	p.ProfitRate = req.ProfitRate
	p.DurationHours = req.DurationHours
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if err := h.planRepo.Update(p); err != nil {
		respondServiceError(c, err)
		return
	}
	h.cache.Delete(c.Request.Context(), cache.KeyActivePlans)
	c.JSON(http.StatusOK, p)
}

func (h *AdminCatalogHandler) DeletePlan(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.planRepo.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	h.cache.Delete(c.Request.Context(), cache.KeyActivePlans)
	c.JSON(http.StatusOK, gin.H{"message": "plan deleted"})
}

type walletRequest struct {
	Currency string `json:"currency" binding:"required"`
	Network  string `json:"network" binding:"required"`
	Address  string `json:"address" binding:"required"`
	IsActive *bool  `json:"is_active"`
}

func (h *AdminCatalogHandler) ListWallets(c *gin.Context) {
	wallets, err := h.walletRepo.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"wallets": wallets})
}

func (h *AdminCatalogHandler) CreateWallet(c *gin.Context) {
	var req walletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	w := &models.AdminWallet{
		Currency: req.Currency,
		Network:  req.Network,
		Address:  req.Address,
		IsActive: req.IsActive == nil || *req.IsActive,
	}
	if err := h.walletRepo.Create(w); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, w)
}

func (h *AdminCatalogHandler) UpdateWallet(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	w, err := h.walletRepo.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	var req walletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	w.Currency = req.Currency
	w.Network = req.Network
	w.Address = req.Address
	if req.IsActive != nil {
		w.IsActive = *req.IsActive
	}
	if err := h.walletRepo.Update(w); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (h *AdminCatalogHandler) DeleteWallet(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.walletRepo.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "wallet deleted"})
}
