package router

import (
	"time"

	"coinvest/config"
	"coinvest/internal/cache"
	"coinvest/internal/handler"
	"coinvest/internal/middleware"
	"coinvest/internal/repository"
	"coinvest/internal/service"
	"coinvest/pkg/cloudinary"
	"coinvest/pkg/mailer"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps collects the shared infrastructure the router wires handlers onto.
type Deps struct {
	DB    *gorm.DB
	Cloud cloudinary.Client
	Cache *cache.Cache
	Mail  *mailer.Mailer
}

// Services exposes the wired service layer so the caller can hook the
// maturity sweep onto its scheduler.
type Services struct {
	Ledger     *service.LedgerService
	Investment *service.InvestmentService
}

func Setup(cfg *config.Config, deps Deps) (*gin.Engine, *Services) {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(deps.DB)
	adminRepo := repository.NewAdminRepository(deps.DB)
	planRepo := repository.NewPlanRepository(deps.DB)
	investmentRepo := repository.NewInvestmentRepository(deps.DB)
	depositRepo := repository.NewDepositRepository(deps.DB)
	withdrawalRepo := repository.NewWithdrawalRepository(deps.DB)
	referralRepo := repository.NewReferralRepository(deps.DB)
	walletRepo := repository.NewWalletRepository(deps.DB)
	ledgerRepo := repository.NewLedgerRepository(deps.DB)
	notifRepo := repository.NewNotificationRepository(deps.DB)
	store := repository.NewStore(deps.DB)

	// Services
	notifier := service.NewNotifier(notifRepo, userRepo, deps.Mail)
	authSvc := service.NewAuthService(cfg, userRepo, adminRepo, referralRepo)
	ledgerSvc := service.NewLedgerService(store, notifier, cfg.Referral.RatePercent)
	investmentSvc := service.NewInvestmentService(store, notifier)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(userRepo, investmentRepo, referralRepo, ledgerRepo, walletRepo, notifRepo, deps.Cache)
	investmentHandler := handler.NewInvestmentHandler(investmentSvc, investmentRepo, planRepo, deps.Cache)
	depositHandler := handler.NewDepositHandler(depositRepo, deps.Cloud)
	withdrawalHandler := handler.NewWithdrawalHandler(ledgerSvc, withdrawalRepo, deps.Cache)
	referralHandler := handler.NewReferralHandler(userRepo, referralRepo)
	adminHandler := handler.NewAdminHandler(authSvc, adminRepo, userRepo, deps.Cache)
	adminFinanceHandler := handler.NewAdminFinanceHandler(ledgerSvc, depositRepo, withdrawalRepo, investmentRepo, deps.Cache)
	adminCatalogHandler := handler.NewAdminCatalogHandler(planRepo, walletRepo, deps.Cache)

	authMw := middleware.AuthRequired(&cfg.JWT)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.PATCH("/change-password", authMw, middleware.UserOnly(), authHandler.ChangePassword)
		}

		user := api.Group("/user")
		user.Use(authMw, middleware.UserOnly())
		{
			user.GET("/dashboard", userHandler.Dashboard)
			user.GET("/profile", userHandler.Profile)
			user.GET("/plans", investmentHandler.ListPlans)
			user.POST("/invest", investmentHandler.Invest)
			user.GET("/investments", investmentHandler.ListMine)
			user.POST("/deposits", depositHandler.Create)
			user.GET("/deposits", depositHandler.ListMine)
			user.POST("/withdrawals", withdrawalHandler.Create)
			user.GET("/withdrawals", withdrawalHandler.ListMine)
			user.DELETE("/withdrawals/:id", withdrawalHandler.Cancel)
			user.GET("/referrals", referralHandler.MyReferrals)
			user.GET("/referral-code", referralHandler.MyCode)
			user.GET("/wallets", userHandler.Wallets)
			user.GET("/ledger", userHandler.Ledger)
			user.GET("/notifications", userHandler.Notifications)
			user.PUT("/notifications/:id/read", userHandler.MarkNotificationRead)
		}

		admin := api.Group("/admin")
		admin.POST("/login", adminHandler.Login)
		adminAuthed := admin.Group("")
		adminAuthed.Use(authMw, middleware.AdminRequired())
		{
			adminAuthed.GET("/dashboard", adminHandler.Dashboard)
			adminAuthed.GET("/users", adminHandler.ListUsers)
			adminAuthed.GET("/users/:id", adminHandler.GetUser)
			adminAuthed.PATCH("/users/:id", adminHandler.UpdateUser)
			adminAuthed.GET("/deposits", adminFinanceHandler.ListDeposits)
			adminAuthed.PUT("/deposits/verify", adminFinanceHandler.VerifyDeposit)
			adminAuthed.GET("/withdrawals", adminFinanceHandler.ListWithdrawals)
			adminAuthed.PUT("/withdrawals/:id/status", adminFinanceHandler.UpdateWithdrawalStatus)
			adminAuthed.GET("/investments", adminFinanceHandler.ListInvestments)
			adminAuthed.GET("/plans", adminCatalogHandler.ListPlans)
			adminAuthed.POST("/plans", adminCatalogHandler.CreatePlan)
			adminAuthed.PUT("/plans/:id", adminCatalogHandler.UpdatePlan)
			adminAuthed.DELETE("/plans/:id", adminCatalogHandler.DeletePlan)
			adminAuthed.GET("/wallets", adminCatalogHandler.ListWallets)
			adminAuthed.POST("/wallets", adminCatalogHandler.CreateWallet)
			adminAuthed.PUT("/wallets/:id", adminCatalogHandler.UpdateWallet)
			adminAuthed.DELETE("/wallets/:id", adminCatalogHandler.DeleteWallet)
		}
	}

	return r, &Services{Ledger: ledgerSvc, Investment: investmentSvc}
}
