package attendance

import (
	"errors"
	"time"
)

const StatusPresent = "present"

var (
	// ErrAlreadyMarked rejects a second record for the same student, class and
	// calendar day.
	ErrAlreadyMarked = errors.New("attendance already marked for this class today")
)

type Attendance struct {
	ID        int       `json:"id" db:"id"`
	ClassID   int       `json:"classId" db:"class_id"`
	StudentID int       `json:"studentId" db:"student_id"`
	Date      time.Time `json:"date" db:"date"` // scan time, local zone
	Status    string    `json:"status" db:"status"`
}

// SameDay reports whether a and b fall on the same calendar day,
// comparing year/month/day components rather than elapsed hours.
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
