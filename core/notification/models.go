package notification

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/hekima/shule/core"
)

type Notification struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"userId" db:"user_id"`
	Message   string    `json:"message" db:"message"`
	Read      bool      `json:"read" db:"read"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"` // UTC
}

// NewNotification contains information needed to create a new Notification.
type NewNotification struct {
	UserID  int    `json:"userId" validate:"required"`
	Message string `json:"message" validate:"required"`
}

func (nn *NewNotification) Validate(validate *validator.Validate) error {
	nn.Message = core.CleanString(nn.Message)
	return validate.Struct(nn)
}
