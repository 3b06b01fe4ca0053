package class

import (
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/hekima/shule/core"
)

// AllTeachers is the sentinel teacher ID matching every class.
const AllTeachers = -1

var errBadSchedule = errors.New("must be a JSON array of {date, startTime, endTime} slots")

type (
	// ScheduleSlot is one planned sitting of a class.
	ScheduleSlot struct {
		Date      string `json:"date"`
		StartTime string `json:"startTime"`
		EndTime   string `json:"endTime"`
	}

	Class struct {
		ID        int            `json:"id" db:"id"`
		Name      string         `json:"name" db:"name"`
		TeacherID int            `json:"teacherId" db:"teacher_id"`
		Schedule  []ScheduleSlot `json:"schedule" db:"-"`
		Room      string         `json:"room" db:"room"`
	}
)

// NewClass contains information needed to create a new Class.
// Schedule travels as a JSON string on the wire.
type NewClass struct {
	Name      string `json:"name" validate:"required"`
	TeacherID int    `json:"teacherId" validate:"required"`
	Schedule  string `json:"schedule" validate:"required"`
	Room      string `json:"room" validate:"required"`
}

func (nc *NewClass) Validate(validate *validator.Validate) ([]ScheduleSlot, error) {
	nc.Name = core.CleanString(nc.Name)
	nc.Room = core.CleanString(nc.Room)

	if err := validate.Struct(nc); err != nil {
		return nil, err
	}

	var slots []ScheduleSlot
	if err := json.Unmarshal([]byte(nc.Schedule), &slots); err != nil {
		return nil, core.NewValidationError(errBadSchedule, core.FieldError{Field: "schedule", Error: errBadSchedule.Error()})
	}
	return slots, nil
}
