package inmemdb

import (
	"sort"

	"github.com/hekima/shule/core/attendance"
)

type attendanceRepository struct {
	db *attendanceTable
}

func NewAttendanceRepository(db *DB) attendance.Repository {
	return &attendanceRepository{db: db.attendance}
}

// CreateAttendance holds the table's write lock across the duplicate check and
// the insert, so two concurrent scans of the same student/class/day cannot
// both get in.
func (repo *attendanceRepository) CreateAttendance(att attendance.Attendance) (attendance.Attendance, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, rec := range repo.db.table {
		if rec.StudentID == att.StudentID && rec.ClassID == att.ClassID && attendance.SameDay(rec.Date, att.Date) {
			return attendance.Attendance{}, attendance.ErrAlreadyMarked
		}
	}

	repo.db.seq++
	att.ID = repo.db.seq
	repo.db.table[att.ID] = &att
	return att, nil
}

func (repo *attendanceRepository) QueryAttendanceByStudent(studentID int) ([]attendance.Attendance, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	records := make([]attendance.Attendance, 0)
	for _, rec := range repo.db.table {
		if rec.StudentID == studentID {
			records = append(records, *rec)
		}
	}
	sortByID(records)
	return records, nil
}

func (repo *attendanceRepository) QueryAttendanceByClass(classID int) ([]attendance.Attendance, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	records := make([]attendance.Attendance, 0)
	for _, rec := range repo.db.table {
		if rec.ClassID == classID {
			records = append(records, *rec)
		}
	}
	sortByID(records)
	return records, nil
}

func sortByID(records []attendance.Attendance) {
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
}
