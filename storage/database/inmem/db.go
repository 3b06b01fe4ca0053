package inmemdb

import (
	"sync"

	"github.com/hekima/shule/core/attendance"
	"github.com/hekima/shule/core/class"
	"github.com/hekima/shule/core/notification"
	"github.com/hekima/shule/core/user"
)

type (
	// DB holds one keyed table per entity; each table serializes its own
	// writers behind an RWMutex and assigns auto-incrementing ids.
	DB struct {
		user         *userTable
		class        *classTable
		attendance   *attendanceTable
		notification *notificationTable
	}

	userTable struct {
		seq   int
		table map[int]*user.User
		mutex sync.RWMutex
	}

	classTable struct {
		seq   int
		table map[int]*class.Class
		mutex sync.RWMutex
	}

	attendanceTable struct {
		seq   int
		table map[int]*attendance.Attendance
		mutex sync.RWMutex
	}

	notificationTable struct {
		seq   int
		table map[int]*notification.Notification
		mutex sync.RWMutex
	}
)

func Open() (*DB, error) {
	db := &DB{}
	db.init()
	return db, nil
}

func (db *DB) init() {
	db.user = &userTable{table: make(map[int]*user.User)}
	db.class = &classTable{table: make(map[int]*class.Class)}
	db.attendance = &attendanceTable{table: make(map[int]*attendance.Attendance)}
	db.notification = &notificationTable{table: make(map[int]*notification.Notification)}
}

// Reset drops all rows and id sequences in place, so repositories already
// bound to the tables keep working. For tests.
func (db *DB) Reset() {
	db.user.mutex.Lock()
	db.user.seq = 0
	db.user.table = make(map[int]*user.User)
	db.user.mutex.Unlock()

	db.class.mutex.Lock()
	db.class.seq = 0
	db.class.table = make(map[int]*class.Class)
	db.class.mutex.Unlock()

	db.attendance.mutex.Lock()
	db.attendance.seq = 0
	db.attendance.table = make(map[int]*attendance.Attendance)
	db.attendance.mutex.Unlock()

	db.notification.mutex.Lock()
	db.notification.seq = 0
	db.notification.table = make(map[int]*notification.Notification)
	db.notification.mutex.Unlock()
}
