package notification

import (
	"net/mail"
	"time"

	"github.com/hekima/shule/core"
	"github.com/hekima/shule/core/user"
)

type (
	Repository interface {
		CreateNotification(n Notification) (Notification, error)
		// QueryNotificationsByUser returns userID's notifications in insertion order.
		QueryNotificationsByUser(userID int) ([]Notification, error)
		// MarkNotificationRead flips read to true. Unknown or already-read ids
		// are a no-op, not an error.
		MarkNotificationRead(id int) error
	}

	Service struct {
		repo    Repository
		usrRepo user.Repository
		mailSvc core.EmailService
	}
)

func NewService(repo Repository, usrRepo user.Repository, mailSvc core.EmailService) *Service {
	return &Service{repo: repo, usrRepo: usrRepo, mailSvc: mailSvc}
}

// Create stores an unread notification and mirrors it to the recipient's
// email, best effort.
func (svc *Service) Create(nn NewNotification) (Notification, error) {
	n := Notification{
		UserID:    nn.UserID,
		Message:   nn.Message,
		CreatedAt: time.Now().UTC(),
	}
	n, err := svc.repo.CreateNotification(n)
	if err != nil {
		return Notification{}, err
	}

	if usr, err := svc.usrRepo.GetUserByID(n.UserID); err == nil && usr.Email != "" {
		svc.mailSvc.SendMessages(&core.EmailMessage{
			To:      []mail.Address{{Name: usr.FullName, Address: usr.Email}},
			Subject: "You have a new notification",
			Body:    n.Message,
		})
	}
	return n, nil
}

func (svc *Service) ListForUser(userID int) ([]Notification, error) {
	return svc.repo.QueryNotificationsByUser(userID)
}

func (svc *Service) MarkRead(id int) error {
	return svc.repo.MarkNotificationRead(id)
}
