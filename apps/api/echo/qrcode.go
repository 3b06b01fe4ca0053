package echoapi

import (
	"net/http"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/hekima/shule/core"
	"github.com/hekima/shule/core/attendance"
	"github.com/hekima/shule/core/class"
	"github.com/hekima/shule/core/user"
)

const qrImageSize = 200 // px

// qrcodeApi keeps one rotating issuer per teacher so switching classrooms
// cancels the previous cycle instead of leaking it.
type qrcodeApi struct {
	classSvc *class.Service
	validate *validator.Validate

	mu      sync.Mutex
	issuers map[int]*attendance.Issuer
}

func registerQRCodeAPI(g *echo.Group, jwt echo.MiddlewareFunc, classSvc *class.Service, validate *validator.Validate) {
	api := qrcodeApi{
		classSvc: classSvc,
		validate: validate,
		issuers:  make(map[int]*attendance.Issuer),
	}

	qg := g.Group("/qrcode", jwt, roleMiddleware(user.RoleTeacher, user.RoleAdmin))
	qg.POST("/select", api.selectClass)
	qg.GET("", api.current)
	qg.POST("/deselect", api.deselect)
}

func (api *qrcodeApi) issuerFor(teacherID int) *attendance.Issuer {
	api.mu.Lock()
	defer api.mu.Unlock()

	iss, ok := api.issuers[teacherID]
	if !ok {
		iss = attendance.NewIssuer()
		api.issuers[teacherID] = iss
	}
	return iss
}

func (api *qrcodeApi) selectClass(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	uid, err := ctxUserID(ctx)
	if err != nil {
		return err
	}

	var data SelectClassRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SelectClassRequest")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	cls, err := api.classSvc.GetByID(data.ClassID)
	if err != nil {
		if errors.Cause(err) == class.ErrNotFound {
			return core.NewValidationError(err, core.FieldError{Field: "classId", Error: "class not found"})
		}
		return errors.Wrap(err, "getting class")
	}
	// teachers only issue codes for their own classes
	if claims.Role == user.RoleTeacher && cls.TeacherID != uid {
		return errHTTPForbidden
	}

	tok := api.issuerFor(uid).Select(cls.ID)
	return ctx.JSON(http.StatusOK, tok)
}

// current serves the PNG for the latest token of the caller's selected class.
func (api *qrcodeApi) current(ctx echo.Context) error {
	uid, err := ctxUserID(ctx)
	if err != nil {
		return err
	}

	tok, ok := api.issuerFor(uid).Current()
	if !ok {
		return errNoClassSelected
	}
	png, err := tok.QRCode(qrImageSize)
	if err != nil {
		return errors.Wrap(err, "encoding QR image")
	}
	return ctx.Blob(http.StatusOK, "image/png", png)
}

func (api *qrcodeApi) deselect(ctx echo.Context) error {
	uid, err := ctxUserID(ctx)
	if err != nil {
		return err
	}

	api.issuerFor(uid).Deselect()
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "class deselected"})
}

type SelectClassRequest struct {
	ClassID int `json:"classId" validate:"required"`
}
