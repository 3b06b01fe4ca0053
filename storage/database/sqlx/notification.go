package sqlxrepos

import (
	"github.com/jmoiron/sqlx"

	"github.com/hekima/shule/core/notification"
)

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) notification.Repository {
	return &notificationRepository{db: db}
}

func (repo *notificationRepository) CreateNotification(n notification.Notification) (notification.Notification, error) {
	err := repo.db.QueryRow(`
		INSERT INTO notifications (user_id, message, read, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		n.UserID, n.Message, n.Read, n.CreatedAt,
	).Scan(&n.ID)
	return n, err
}

func (repo *notificationRepository) QueryNotificationsByUser(userID int) ([]notification.Notification, error) {
	notifs := make([]notification.Notification, 0)
	err := repo.db.Select(&notifs, `SELECT * FROM notifications WHERE user_id = $1 ORDER BY id`, userID)
	return notifs, err
}

func (repo *notificationRepository) MarkNotificationRead(id int) error {
	_, err := repo.db.Exec(`UPDATE notifications SET read = TRUE WHERE id = $1`, id)
	return err
}
