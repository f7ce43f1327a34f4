package handler

import (
	"net/http"
	"time"

	"coinvest/internal/cache"
	"coinvest/internal/middleware"
	"coinvest/internal/repository"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userRepo       *repository.UserRepository
	investmentRepo *repository.InvestmentRepository
	referralRepo   *repository.ReferralRepository
	ledgerRepo     *repository.LedgerRepository
	walletRepo     *repository.WalletRepository
	notifRepo      *repository.NotificationRepository
	cache          *cache.Cache
}

func NewUserHandler(
	userRepo *repository.UserRepository,
	investmentRepo *repository.InvestmentRepository,
	referralRepo *repository.ReferralRepository,
	ledgerRepo *repository.LedgerRepository,
	walletRepo *repository.WalletRepository,
	notifRepo *repository.NotificationRepository,
	c *cache.Cache,
) *UserHandler {
	return &UserHandler{
		userRepo:       userRepo,
		investmentRepo: investmentRepo,
		referralRepo:   referralRepo,
		ledgerRepo:     ledgerRepo,
		walletRepo:     walletRepo,
		notifRepo:      notifRepo,
		cache:          c,
	}
}

type dashboardResponse struct {
	TotalBalance      float64     `json:"total_balance"`
	TotalProfit       float64     `json:"total_profit"`
	ReferralBalance   float64     `json:"referral_balance"`
	ReferralCount     int64       `json:"referral_count"`
	ActiveInvestments interface{} `json:"active_investments"`
}

// Dashboard returns aggregated balances, active investments and the
// referral count. Cached briefly per user.
func (h *UserHandler) Dashboard(c *gin.Context) {
	userID := middleware.GetUserID(c)
	key := cache.KeyUserDashboard(userID)
	var cached dashboardResponse
	if h.cache.Get(c.Request.Context(), key, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}
	u, err := h.userRepo.GetByID(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	active, err := h.investmentRepo.ListActiveByUser(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	refCount, err := h.referralRepo.CountByReferrer(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resp := dashboardResponse{
		TotalBalance:      u.TotalBalance,
		TotalProfit:       u.TotalProfit,
		ReferralBalance:   u.ReferralBalance,
		ReferralCount:     refCount,
		ActiveInvestments: active,
	}
	h.cache.Set(c.Request.Context(), key, resp, 30*time.Second)
	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) Profile(c *gin.Context) {
	u, err := h.userRepo.GetByID(middleware.GetUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// Ledger returns the user's balance-affecting event history.
func (h *UserHandler) Ledger(c *gin.Context) {
	limit, offset := parseLimitOffset(c)
	entries, err := h.ledgerRepo.ListByUser(middleware.GetUserID(c), limit, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// Wallets returns the active admin deposit addresses.
func (h *UserHandler) Wallets(c *gin.Context) {
	wallets, err := h.walletRepo.ListActive()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"wallets": wallets})
}

func (h *UserHandler) Notifications(c *gin.Context) {
	limit, offset := parseLimitOffset(c)
	list, err := h.notifRepo.ListByUser(middleware.GetUserID(c), limit, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": list})
}

func (h *UserHandler) MarkNotificationRead(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.notifRepo.MarkRead(middleware.GetUserID(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "marked read"})
}
