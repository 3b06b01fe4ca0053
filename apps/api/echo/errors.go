package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/hekima/shule/core"
	"github.com/hekima/shule/core/user"
)

var (
	errHTTPUnauthorized     = echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	errHTTPForbidden        = echo.NewHTTPError(http.StatusForbidden, "Forbidden")
	errAuthenticationFailed = echo.NewHTTPError(http.StatusBadRequest, "authentication failed")
	errRefreshExpired       = echo.NewHTTPError(http.StatusForbidden, "refresh has expired")
	errNoClassSelected      = echo.NewHTTPError(http.StatusNotFound, "no class selected")
	errAlreadyMarked        = echo.NewHTTPError(http.StatusBadRequest, "You have already marked attendance for this class today")

	msgInvalidRequest = "Invalid request data"
	msgInternalError  = "Internal server error"
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that maps our
// error taxonomy onto `{"message": ...}` bodies.
// signalShutdown is called to gracefully stop the Server whenever a
// core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}
		var fields map[string]string

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr == middleware.ErrJWTMissing {
				code = http.StatusUnauthorized
				message = errHTTPUnauthorized.Message
				break
			}
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
			if code == http.StatusUnauthorized {
				message = errHTTPUnauthorized.Message
			}
		case validator.ValidationErrors:
			code = http.StatusBadRequest
			message = msgInvalidRequest
			fields = make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fields[vErr.Field()] = vErr.Translate(translator)
			}
		case *core.ValidationError:
			code = http.StatusBadRequest
			message = msgInvalidRequest
			if origErr.Fields != nil {
				fields = make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fields[fErr.Field] = fErr.Error
				}
			}
		default: // any other error is a server error
			code = http.StatusInternalServerError
			message = msgInternalError

			var usr user.User
			if claims, cErr := getContextClaims(ctx); cErr == nil {
				usr.Username = claims.Username
				usr.Email = claims.Email
			}
			logger.Error(msgInternalError, errors.Wrap(err, msgInternalError), usr)

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		body := echo.Map{"message": message}
		if fields != nil {
			body["fields"] = fields
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead {
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, body)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
