package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/hekima/shule/core/user"
)

// roleMiddleware only lets authenticated principals whose role is in the
// allowed set through.
func roleMiddleware(roles ...user.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return err
			}
			for _, role := range roles {
				if claims.Role == role {
					return next(ctx)
				}
			}
			return errHTTPForbidden
		}
	}
}
