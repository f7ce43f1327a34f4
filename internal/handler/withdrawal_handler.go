package handler

import (
	"net/http"

	"coinvest/internal/cache"
	"coinvest/internal/middleware"
	"coinvest/internal/repository"
	"coinvest/internal/service"

	"github.com/gin-gonic/gin"
)

type WithdrawalHandler struct {
	ledgerSvc      *service.LedgerService
	withdrawalRepo *repository.WithdrawalRepository
	cache          *cache.Cache
}

func NewWithdrawalHandler(
	ledgerSvc *service.LedgerService,
	withdrawalRepo *repository.WithdrawalRepository,
	c *cache.Cache,
) *WithdrawalHandler {
	return &WithdrawalHandler{
		ledgerSvc:      ledgerSvc,
		withdrawalRepo: withdrawalRepo,
		cache:          c,
	}
}

// Create handles POST /user/withdrawals. The profit hold is taken
// immediately; insufficient profit yields a 400 with no row created.
func (h *WithdrawalHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		WalletAddress  string  `json:"wallet_address" binding:"required"`
		Amount         float64 `json:"amount" binding:"required,gt=0"`
		Cryptocurrency string  `json:"cryptocurrency" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	w, err := h.ledgerSvc.RequestWithdrawal(userID, req.Amount, req.WalletAddress, req.Cryptocurrency)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.cache.Delete(c.Request.Context(), cache.KeyUserDashboard(userID), cache.KeyAdminStats)
	c.JSON(http.StatusCreated, gin.H{"withdrawal": w})
}

func (h *WithdrawalHandler) ListMine(c *gin.Context) {
	limit, offset := parseLimitOffset(c)
	list, err := h.withdrawalRepo.ListByUser(middleware.GetUserID(c), limit, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdrawals": list})
}

// Cancel handles DELETE /user/withdrawals/:id — pending only, refunds
// the hold like a rejection.
func (h *WithdrawalHandler) Cancel(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.ledgerSvc.CancelWithdrawal(userID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	h.cache.Delete(c.Request.Context(), cache.KeyUserDashboard(userID), cache.KeyAdminStats)
	c.JSON(http.StatusOK, gin.H{"message": "withdrawal cancelled"})
}
