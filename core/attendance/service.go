package attendance

type (
	Repository interface {
		// CreateAttendance inserts att unless a record for the same student,
		// class and calendar day already exists, in which case it returns
		// ErrAlreadyMarked. The check and the insert are one atomic step.
		CreateAttendance(att Attendance) (Attendance, error)
		QueryAttendanceByStudent(studentID int) ([]Attendance, error)
		QueryAttendanceByClass(classID int) ([]Attendance, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Mark records studentID as present in classID right now.
func (svc *Service) Mark(studentID, classID int) (Attendance, error) {
	att := Attendance{
		ClassID:   classID,
		StudentID: studentID,
		Date:      nowFunc(),
		Status:    StatusPresent,
	}
	return svc.repo.CreateAttendance(att)
}

// MarkScan validates a raw scanned payload and, if fresh, submits attendance
// for the class it names.
func (svc *Service) MarkScan(studentID int, raw string) (Attendance, error) {
	classID, err := ValidateScan(raw, nowFunc())
	if err != nil {
		return Attendance{}, err
	}
	return svc.Mark(studentID, classID)
}

func (svc *Service) QueryByStudent(studentID int) ([]Attendance, error) {
	return svc.repo.QueryAttendanceByStudent(studentID)
}

func (svc *Service) QueryByClass(classID int) ([]Attendance, error) {
	return svc.repo.QueryAttendanceByClass(classID)
}
