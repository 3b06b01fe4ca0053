package sqlxrepos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/hekima/shule/core/attendance"
)

type attendanceRepository struct {
	db *sqlx.DB
}

func NewAttendanceRepository(db *sqlx.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

// CreateAttendance races through the attendance_once_per_day unique index:
// ON CONFLICT makes the duplicate check part of the insert itself, so of two
// concurrent same-day submissions exactly one gets a row back.
func (repo *attendanceRepository) CreateAttendance(att attendance.Attendance) (attendance.Attendance, error) {
	err := repo.db.QueryRow(`
		INSERT INTO attendance (class_id, student_id, date, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (student_id, class_id, (date::date)) DO NOTHING
		RETURNING id`,
		att.ClassID, att.StudentID, att.Date, att.Status,
	).Scan(&att.ID)
	if err == sql.ErrNoRows {
		return attendance.Attendance{}, attendance.ErrAlreadyMarked
	}
	if err != nil {
		return attendance.Attendance{}, err
	}
	return att, nil
}

func (repo *attendanceRepository) QueryAttendanceByStudent(studentID int) ([]attendance.Attendance, error) {
	records := make([]attendance.Attendance, 0)
	err := repo.db.Select(&records, `SELECT * FROM attendance WHERE student_id = $1 ORDER BY id`, studentID)
	return records, err
}

func (repo *attendanceRepository) QueryAttendanceByClass(classID int) ([]attendance.Attendance, error) {
	records := make([]attendance.Attendance, 0)
	err := repo.db.Select(&records, `SELECT * FROM attendance WHERE class_id = $1 ORDER BY id`, classID)
	return records, err
}
