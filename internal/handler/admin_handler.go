package handler

import (
	"errors"
	"net/http"
	"time"

	"coinvest/internal/cache"
	"coinvest/internal/repository"
	"coinvest/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	authSvc   *service.AuthService
	adminRepo *repository.AdminRepository
	userRepo  *repository.UserRepository
	cache     *cache.Cache
}

func NewAdminHandler(
	authSvc *service.AuthService,
	adminRepo *repository.AdminRepository,
	userRepo *repository.UserRepository,
	c *cache.Cache,
) *AdminHandler {
	return &AdminHandler{
		authSvc:   authSvc,
		adminRepo: adminRepo,
		userRepo:  userRepo,
		cache:     c,
	}
}

// Login handles POST /admin/login.
func (h *AdminHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	admin, access, err := h.authSvc.AdminLogin(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCreds) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"admin":        admin,
		"access_token": access,
	})
}

// Dashboard handles GET /admin/dashboard — aggregate platform stats.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	var cached repository.DashboardStats
	if h.cache.Get(c.Request.Context(), cache.KeyAdminStats, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}
	stats, err := h.adminRepo.GetDashboardStats()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.cache.Set(c.Request.Context(), cache.KeyAdminStats, stats, 30*time.Second)
	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, limit := parsePagination(c)
	users, total, err := h.userRepo.List(c.Query("search"), page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users, "total": total, "page": page, "limit": limit})
}

func (h *AdminHandler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	u, err := h.userRepo.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateUser handles PATCH /admin/users/:id. Balances are never editable
// here — they only move through the ledger operations.
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	allowed := map[string]bool{"username": true, "email": true, "is_active": true}
	safe := make(map[string]interface{})
	for k, v := range updates {
		if allowed[k] {
			safe[k] = v
		}
	}
	if len(safe) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no valid fields to update"})
		return
	}
	if err := h.userRepo.UpdateFields(id, safe); err != nil {
		respondServiceError(c, err)
		return
	}
	u, err := h.userRepo.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
