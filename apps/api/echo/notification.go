package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/hekima/shule/core"
	"github.com/hekima/shule/core/notification"
	"github.com/hekima/shule/core/user"
)

type notificationApi struct {
	svc      *notification.Service
	validate *validator.Validate
}

func registerNotificationAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *notification.Service, validate *validator.Validate) {
	api := notificationApi{svc: svc, validate: validate}

	ng := g.Group("/notifications", jwt)
	ng.POST("", api.create, roleMiddleware(user.RoleTeacher, user.RoleAdmin))
	ng.GET("", api.listOwn)
	ng.POST("/:id/read", api.markRead)
}

func (api *notificationApi) create(ctx echo.Context) error {
	var data notification.NewNotification
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewNotification")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	notif, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating notification")
	}
	return ctx.JSON(http.StatusCreated, notif)
}

func (api *notificationApi) listOwn(ctx echo.Context) error {
	uid, err := ctxUserID(ctx)
	if err != nil {
		return err
	}
	notifs, err := api.svc.ListForUser(uid)
	if err != nil {
		return errors.Wrap(err, "listing notifications")
	}
	if notifs == nil {
		notifs = []notification.Notification{}
	}
	return ctx.JSON(http.StatusOK, notifs)
}

func (api *notificationApi) markRead(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "id", Error: "must be numeric"})
	}
	if err := api.svc.MarkRead(id); err != nil {
		return errors.Wrap(err, "marking notification read")
	}
	return ctx.NoContent(http.StatusOK)
}
