package service

import (
	"errors"

	"coinvest/config"
	"coinvest/internal/auth"
	"coinvest/internal/domain"
	"coinvest/internal/models"
	"coinvest/internal/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailExists    = errors.New("email already registered")
	ErrUsernameExists = errors.New("username already taken")
	ErrInvalidCreds   = errors.New("invalid email or password")
)

type AuthService struct {
	cfg          *config.Config
	userRepo     *repository.UserRepository
	adminRepo    *repository.AdminRepository
	referralRepo *repository.ReferralRepository
}

func NewAuthService(
	cfg *config.Config,
	userRepo *repository.UserRepository,
	adminRepo *repository.AdminRepository,
	referralRepo *repository.ReferralRepository,
) *AuthService {
	return &AuthService{
		cfg:          cfg,
		userRepo:     userRepo,
		adminRepo:    adminRepo,
		referralRepo: referralRepo,
	}
}

// Register creates a user with a fresh referral code. When referredBy
// names an existing user's code, the referral edge is created once here;
// commissions are only paid later, per verified deposit.
func (s *AuthService) Register(email, username, password, referredBy string) (*models.User, string, string, error) {
	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, "", "", ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", "", err
	}
	if _, err := s.userRepo.GetByUsername(username); err == nil {
		return nil, "", "", ErrUsernameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}
	u := &models.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	// Retry on the unlikely referral code collision.
	for i := 0; i < 10; i++ {
		code, err := repository.GenerateCode()
		if err != nil {
			return nil, "", "", err
		}
		u.ReferralCode = code
		if err := s.userRepo.Create(u); err == nil {
			break
		} else if i == 9 {
			return nil, "", "", err
		}
	}
	s.linkReferrer(referredBy, u)
	access, err := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, domain.PrincipalUser)
	if err != nil {
		return u, "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	if err != nil {
		return u, access, "", err
	}
	return u, access, refresh, nil
}

func (s *AuthService) linkReferrer(code string, newUser *models.User) {
	if code == "" {
		return
	}
	referrer, err := s.userRepo.GetByReferralCode(code)
	if err != nil || referrer.ID == newUser.ID {
		return
	}
	if err := s.referralRepo.Create(&models.Referral{
		ReferrerID: referrer.ID,
		RefereeID:  newUser.ID,
	}); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"referrer": referrer.ID,
			"referee":  newUser.ID,
		}).Error("create referral edge")
	}
}

func (s *AuthService) Login(email, password string) (*models.User, string, string, error) {
	u, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", ErrInvalidCreds
		}
		return nil, "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCreds
	}
	access, err := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, domain.PrincipalUser)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	if err != nil {
		return nil, "", "", err
	}
	return u, access, refresh, nil
}

// AdminLogin authenticates against the admins table and issues an
// admin-kind token.
func (s *AuthService) AdminLogin(email, password string) (*models.Admin, string, error) {
	a, err := s.adminRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCreds
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCreds
	}
	access, err := auth.GenerateAccessToken(&s.cfg.JWT, a.ID, a.Email, domain.PrincipalAdmin)
	if err != nil {
		return nil, "", err
	}
	return a, access, nil
}

func (s *AuthService) Refresh(refreshToken string) (string, string, error) {
	userID, err := auth.ParseRefreshToken(&s.cfg.JWT, refreshToken)
	if err != nil {
		return "", "", auth.ErrInvalidToken
	}
	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		return "", "", auth.ErrInvalidToken
	}
	access, err := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, domain.PrincipalUser)
	if err != nil {
		return "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (s *AuthService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		return ErrInvalidCreds
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCreds
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return s.userRepo.Update(u)
}
