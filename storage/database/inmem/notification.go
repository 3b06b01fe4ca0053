package inmemdb

import (
	"sort"

	"github.com/hekima/shule/core/notification"
)

type notificationRepository struct {
	db *notificationTable
}

func NewNotificationRepository(db *DB) notification.Repository {
	return &notificationRepository{db: db.notification}
}

func (repo *notificationRepository) CreateNotification(n notification.Notification) (notification.Notification, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.seq++
	n.ID = repo.db.seq
	repo.db.table[n.ID] = &n
	return n, nil
}

func (repo *notificationRepository) QueryNotificationsByUser(userID int) ([]notification.Notification, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	notifs := make([]notification.Notification, 0)
	for _, n := range repo.db.table {
		if n.UserID == userID {
			notifs = append(notifs, *n)
		}
	}
	// ids are insertion-ordered
	sort.Slice(notifs, func(i, j int) bool { return notifs[i].ID < notifs[j].ID })
	return notifs, nil
}

func (repo *notificationRepository) MarkNotificationRead(id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if n, ok := repo.db.table[id]; ok {
		n.Read = true
	}
	return nil
}
