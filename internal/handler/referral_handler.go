package handler

import (
	"net/http"

	"coinvest/internal/middleware"
	"coinvest/internal/repository"

	"github.com/gin-gonic/gin"
)

type ReferralHandler struct {
	userRepo     *repository.UserRepository
	referralRepo *repository.ReferralRepository
}

func NewReferralHandler(userRepo *repository.UserRepository, referralRepo *repository.ReferralRepository) *ReferralHandler {
	return &ReferralHandler{userRepo: userRepo, referralRepo: referralRepo}
}

// MyCode returns the authenticated user's referral code.
func (h *ReferralHandler) MyCode(c *gin.Context) {
	u, err := h.userRepo.GetByID(middleware.GetUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": u.ReferralCode})
}

// MyReferrals lists the users referred by the caller with the earnings
// each edge has paid out. Reading never mutates balances.
func (h *ReferralHandler) MyReferrals(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, offset := parseLimitOffset(c)
	referrals, err := h.referralRepo.ListByReferrer(userID, limit, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	out := make([]gin.H, 0, len(referrals))
	var totalEarnings float64
	for _, ref := range referrals {
		username := ""
		if ref.Referee != nil {
			username = ref.Referee.Username
		}
		totalEarnings += ref.Earnings
		out = append(out, gin.H{
			"referee":    gin.H{"username": username},
			"earnings":   ref.Earnings,
			"created_at": ref.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"referrals":      out,
		"total":          len(out),
		"total_earnings": totalEarnings,
	})
}
