package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/hekima/shule/core"
	"github.com/hekima/shule/core/attendance"
	"github.com/hekima/shule/core/class"
	"github.com/hekima/shule/core/notification"
	"github.com/hekima/shule/core/user"
)

type (
	ServerDeps struct {
		Conf            *core.Config
		Logger          core.Logger
		UserSvc         *user.Service
		ClassSvc        *class.Service
		AttendanceSvc   *attendance.Service
		NotificationSvc *notification.Service
		Validate        *validator.Validate
		Translator      ut.Translator
	}

	Server interface {
		http.Handler
		Start()
		Shutdown(context.Context) error
		Close() error
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
	}

	server struct {
		deps     ServerDeps
		app      *echo.Echo
		errs     chan error
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps ServerDeps) Server {
	s := &server{
		deps:     deps,
		app:      echo.New(),
		errs:     make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)

	s.app.GET("/", home)

	api := s.app.Group("/api")
	jwt := newJWTMiddleware(conf)

	registerAuthAPI(api, jwt, conf, s.deps.UserSvc, s.deps.Validate)
	registerUserAPI(api, jwt, s.deps.UserSvc, s.deps.Validate)
	registerClassAPI(api, jwt, s.deps.ClassSvc, s.deps.Validate)
	registerAttendanceAPI(api, jwt, s.deps.AttendanceSvc, s.deps.Validate)
	registerQRCodeAPI(api, jwt, s.deps.ClassSvc, s.deps.Validate)
	registerNotificationAPI(api, jwt, s.deps.NotificationSvc, s.deps.Validate)
}

func (s *server) signalShutdown() {
	s.shutdown <- syscall.SIGTERM
}

// Start runs the listener; the caller selects on Errors()/ShutdownSignal().
func (s *server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Addr); err != nil && err != http.ErrServerClosed {
		s.errs <- err
	}
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) Errors() <-chan error {
	return s.errs
}

func (s *server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Shule API!")
}
