package class

import "errors"

var ErrNotFound = errors.New("class not found")

type (
	Repository interface {
		CreateClass(cls Class) (Class, error)
		GetClassByID(id int) (Class, error)
		// QueryClassesByTeacher returns the classes owned by teacherID;
		// AllTeachers returns every class.
		QueryClassesByTeacher(teacherID int) ([]Class, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(nc NewClass, slots []ScheduleSlot) (Class, error) {
	cls := Class{
		Name:      nc.Name,
		TeacherID: nc.TeacherID,
		Schedule:  slots,
		Room:      nc.Room,
	}
	return svc.repo.CreateClass(cls)
}

func (svc *Service) GetByID(id int) (Class, error) {
	return svc.repo.GetClassByID(id)
}

func (svc *Service) QueryByTeacher(teacherID int) ([]Class, error) {
	return svc.repo.QueryClassesByTeacher(teacherID)
}

func (svc *Service) QueryAll() ([]Class, error) {
	return svc.repo.QueryClassesByTeacher(AllTeachers)
}
