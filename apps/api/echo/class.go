package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/hekima/shule/core/class"
	"github.com/hekima/shule/core/user"
)

type classApi struct {
	svc      *class.Service
	validate *validator.Validate
}

func registerClassAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *class.Service, validate *validator.Validate) {
	api := classApi{svc: svc, validate: validate}

	cg := g.Group("/classes", jwt)
	cg.GET("", api.query)
	cg.POST("", api.create, roleMiddleware(user.RoleTeacher, user.RoleAdmin))
}

// query scopes the listing by role: teachers see their own classes,
// students and admins see all of them.
func (api *classApi) query(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var classes []class.Class
	switch claims.Role {
	case user.RoleTeacher:
		id, err := ctxUserID(ctx)
		if err != nil {
			return err
		}
		classes, err = api.svc.QueryByTeacher(id)
		if err != nil {
			return errors.Wrap(err, "querying classes by teacher")
		}
	case user.RoleStudent, user.RoleAdmin:
		classes, err = api.svc.QueryAll()
		if err != nil {
			return errors.Wrap(err, "querying classes")
		}
	default:
		return errHTTPForbidden
	}

	if classes == nil {
		classes = []class.Class{}
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (api *classApi) create(ctx echo.Context) error {
	var data class.NewClass
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewClass")
	}
	slots, err := data.Validate(api.validate)
	if err != nil {
		return err
	}

	cls, err := api.svc.Create(data, slots)
	if err != nil {
		return errors.Wrap(err, "creating class")
	}
	return ctx.JSON(http.StatusCreated, cls)
}
