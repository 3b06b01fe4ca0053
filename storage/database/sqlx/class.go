package sqlxrepos

import (
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"

	"github.com/hekima/shule/core/class"
)

type classRepository struct {
	db *sqlx.DB
}

func NewClassRepository(db *sqlx.DB) class.Repository {
	return &classRepository{db: db}
}

// classRow carries the schedule in its stored JSON form.
type classRow struct {
	class.Class
	ScheduleJSON []byte `db:"schedule"`
}

func (row classRow) toClass() (class.Class, error) {
	cls := row.Class
	if err := json.Unmarshal(row.ScheduleJSON, &cls.Schedule); err != nil {
		return class.Class{}, err
	}
	return cls, nil
}

func (repo *classRepository) CreateClass(cls class.Class) (class.Class, error) {
	scheduleJSON, err := json.Marshal(cls.Schedule)
	if err != nil {
		return class.Class{}, err
	}
	err = repo.db.QueryRow(`
		INSERT INTO classes (name, teacher_id, schedule, room)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		cls.Name, cls.TeacherID, scheduleJSON, cls.Room,
	).Scan(&cls.ID)
	return cls, err
}

func (repo *classRepository) GetClassByID(id int) (class.Class, error) {
	var row classRow
	err := repo.db.Get(&row, `SELECT * FROM classes WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return class.Class{}, class.ErrNotFound
	}
	if err != nil {
		return class.Class{}, err
	}
	return row.toClass()
}

func (repo *classRepository) QueryClassesByTeacher(teacherID int) ([]class.Class, error) {
	rows := make([]classRow, 0)
	var err error
	if teacherID == class.AllTeachers {
		err = repo.db.Select(&rows, `SELECT * FROM classes ORDER BY id`)
	} else {
		err = repo.db.Select(&rows, `SELECT * FROM classes WHERE teacher_id = $1 ORDER BY id`, teacherID)
	}
	if err != nil {
		return nil, err
	}

	classes := make([]class.Class, 0, len(rows))
	for _, row := range rows {
		cls, err := row.toClass()
		if err != nil {
			return nil, err
		}
		classes = append(classes, cls)
	}
	return classes, nil
}
