package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/hekima/shule/core"
	"github.com/hekima/shule/core/attendance"
	"github.com/hekima/shule/core/user"
)

type attendanceApi struct {
	svc      *attendance.Service
	validate *validator.Validate
}

func registerAttendanceAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *attendance.Service, validate *validator.Validate) {
	api := attendanceApi{svc: svc, validate: validate}

	ag := g.Group("/attendance", jwt)
	ag.POST("", api.mark, roleMiddleware(user.RoleStudent))
	ag.POST("/scan", api.scan, roleMiddleware(user.RoleStudent))
	ag.GET("/student", api.studentHistory, roleMiddleware(user.RoleStudent))
	ag.GET("/class/:classId", api.classHistory, roleMiddleware(user.RoleTeacher, user.RoleAdmin))
}

// mark records the caller present in the class their device already validated
// the code for.
func (api *attendanceApi) mark(ctx echo.Context) error {
	studentID, err := ctxUserID(ctx)
	if err != nil {
		return err
	}

	var data MarkAttendanceRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to MarkAttendanceRequest")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	att, err := api.svc.Mark(studentID, data.ClassID)
	if err != nil {
		if errors.Cause(err) == attendance.ErrAlreadyMarked {
			return errAlreadyMarked
		}
		return errors.Wrap(err, "marking attendance")
	}
	return ctx.JSON(http.StatusCreated, att)
}

// scan is the server-side validation path: the raw scanned payload comes in,
// freshness is checked here, then attendance is submitted.
func (api *attendanceApi) scan(ctx echo.Context) error {
	studentID, err := ctxUserID(ctx)
	if err != nil {
		return err
	}

	var data ScanRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ScanRequest")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	att, err := api.svc.MarkScan(studentID, data.Data)
	if err != nil {
		switch errors.Cause(err) {
		case attendance.ErrAlreadyMarked:
			return errAlreadyMarked
		case attendance.ErrMalformedToken, attendance.ErrExpiredToken:
			return echo.NewHTTPError(http.StatusBadRequest, errors.Cause(err).Error())
		}
		return errors.Wrap(err, "marking attendance from scan")
	}
	return ctx.JSON(http.StatusCreated, att)
}

func (api *attendanceApi) studentHistory(ctx echo.Context) error {
	studentID, err := ctxUserID(ctx)
	if err != nil {
		return err
	}
	records, err := api.svc.QueryByStudent(studentID)
	if err != nil {
		return errors.Wrap(err, "querying attendance by student")
	}
	if records == nil {
		records = []attendance.Attendance{}
	}
	return ctx.JSON(http.StatusOK, records)
}

func (api *attendanceApi) classHistory(ctx echo.Context) error {
	classID, err := strconv.Atoi(ctx.Param("classId"))
	if err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "classId", Error: "must be numeric"})
	}
	records, err := api.svc.QueryByClass(classID)
	if err != nil {
		return errors.Wrap(err, "querying attendance by class")
	}
	if records == nil {
		records = []attendance.Attendance{}
	}
	return ctx.JSON(http.StatusOK, records)
}

type (
	MarkAttendanceRequest struct {
		ClassID int `json:"classId" validate:"required"`
	}

	ScanRequest struct {
		Data string `json:"data" validate:"required"`
	}
)
