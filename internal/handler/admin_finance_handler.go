package handler

import (
	"net/http"

	"coinvest/internal/cache"
	"coinvest/internal/repository"
	"coinvest/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminFinanceHandler covers the admin console's money-moving endpoints:
// deposit verification and the withdrawal state machine.
type AdminFinanceHandler struct {
	ledgerSvc      *service.LedgerService
	depositRepo    *repository.DepositRepository
	withdrawalRepo *repository.WithdrawalRepository
	investmentRepo *repository.InvestmentRepository
	cache          *cache.Cache
}

func NewAdminFinanceHandler(
	ledgerSvc *service.LedgerService,
	depositRepo *repository.DepositRepository,
	withdrawalRepo *repository.WithdrawalRepository,
	investmentRepo *repository.InvestmentRepository,
	c *cache.Cache,
) *AdminFinanceHandler {
	return &AdminFinanceHandler{
		ledgerSvc:      ledgerSvc,
		depositRepo:    depositRepo,
		withdrawalRepo: withdrawalRepo,
		investmentRepo: investmentRepo,
		cache:          c,
	}
}

func (h *AdminFinanceHandler) ListDeposits(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.depositRepo.List(c.Query("status"), page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": total, "page": page, "limit": limit})
}

// VerifyDeposit handles PUT /admin/deposits/verify. Verifying a pending
// deposit credits the user's balance exactly once; repeat calls are
// no-ops.
func (h *AdminFinanceHandler) VerifyDeposit(c *gin.Context) {
	var req struct {
		DepositID uint   `json:"deposit_id" binding:"required"`
		Status    string `json:"status" binding:"required"`
		AdminNote string `json:"admin_note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	d, err := h.ledgerSvc.VerifyDeposit(req.DepositID, req.Status, req.AdminNote)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.cache.Delete(c.Request.Context(), cache.KeyUserDashboard(d.UserID), cache.KeyAdminStats)
	c.JSON(http.StatusOK, gin.H{"deposit": d})
}

func (h *AdminFinanceHandler) ListWithdrawals(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.withdrawalRepo.List(c.Query("status"), page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": total, "page": page, "limit": limit})
}

// UpdateWithdrawalStatus handles PUT /admin/withdrawals/:id/status.
func (h *AdminFinanceHandler) UpdateWithdrawalStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	w, err := h.ledgerSvc.ResolveWithdrawal(id, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.cache.Delete(c.Request.Context(), cache.KeyUserDashboard(w.UserID), cache.KeyAdminStats)
	c.JSON(http.StatusOK, gin.H{"withdrawal": w})
}

func (h *AdminFinanceHandler) ListInvestments(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.investmentRepo.List(c.Query("status"), page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": total, "page": page, "limit": limit})
}
