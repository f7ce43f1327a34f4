package service

import (
	"fmt"

	"coinvest/internal/models"
	"coinvest/internal/repository"
	"coinvest/pkg/mailer"

	"github.com/sirupsen/logrus"
)

// Notifier records in-app notifications and sends best-effort email.
// Notification is never allowed to fail a balance-affecting operation:
// errors are logged and swallowed. A nil Notifier is valid and silent.
type Notifier struct {
	repo     *repository.NotificationRepository
	userRepo *repository.UserRepository
	mail     *mailer.Mailer
}

func NewNotifier(repo *repository.NotificationRepository, userRepo *repository.UserRepository, mail *mailer.Mailer) *Notifier {
	return &Notifier{repo: repo, userRepo: userRepo, mail: mail}
}

func (n *Notifier) notify(userID uint, notifType, title, body string) {
	if n == nil {
		return
	}
	if n.repo != nil {
		if err := n.repo.Create(&models.Notification{
			UserID: userID,
			Type:   notifType,
			Title:  title,
			Body:   body,
		}); err != nil {
			logrus.WithError(err).WithField("user_id", userID).Error("create notification")
		}
	}
	n.sendEmail(userID, title, body)
}

func (n *Notifier) sendEmail(userID uint, subject, body string) {
	if n.mail == nil || n.userRepo == nil {
		return
	}
	u, err := n.userRepo.GetByID(userID)
	if err != nil {
		return
	}
	go func(to string) {
		if err := n.mail.Send(to, subject, body); err != nil {
			logrus.WithError(err).WithField("to", to).Warn("notification email failed")
		}
	}(u.Email)
}

func (n *Notifier) DepositVerified(userID uint, amount float64, currency string) {
	n.notify(userID, "DEPOSIT_VERIFIED", "Deposit verified",
		fmt.Sprintf("Your deposit of %.2f %s has been verified and credited to your balance.", amount, currency))
}

func (n *Notifier) DepositRejected(userID uint, amount float64, note string) {
	body := fmt.Sprintf("Your deposit of %.2f was rejected.", amount)
	if note != "" {
		body += " Note: " + note
	}
	n.notify(userID, "DEPOSIT_REJECTED", "Deposit rejected", body)
}

func (n *Notifier) WithdrawalUpdated(userID uint, amount float64, status string) {
	n.notify(userID, "WITHDRAWAL_"+status, "Withdrawal "+status,
		fmt.Sprintf("Your withdrawal of %.2f is now %s.", amount, status))
}

func (n *Notifier) InvestmentMatured(userID uint, profit float64) {
	n.notify(userID, "INVESTMENT_MATURED", "Investment matured",
		fmt.Sprintf("Your investment has matured. Profit of %.2f has been credited.", profit))
}
