package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/hekima/shule/apps/api/echo"
	"github.com/hekima/shule/core"
	"github.com/hekima/shule/core/attendance"
	"github.com/hekima/shule/core/class"
	"github.com/hekima/shule/core/notification"
	"github.com/hekima/shule/core/user"
	emailsvc "github.com/hekima/shule/services/email"
	logsvc "github.com/hekima/shule/services/logger"
	inmemdb "github.com/hekima/shule/storage/database/inmem"
	sqlxrepos "github.com/hekima/shule/storage/database/sqlx"
)

type repositories struct {
	usr   user.Repository
	cls   class.Repository
	att   attendance.Repository
	notif notification.Repository
}

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	dbLogger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	dbLogger.Enable(!conf.Debug)

	// set up DB & repos
	repos, closeDB, err := setUpRepositories(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = closeDB(); err != nil {
			dbLogger.Fatal("Failed to close", err)
		}
	}()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	usrSvc := user.NewService(repos.usr)
	clsSvc := class.NewService(repos.cls)
	attSvc := attendance.NewService(repos.att)
	notifSvc := notification.NewService(repos.notif, repos.usr, mailSvc)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugAddr, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:            conf,
			Logger:          logger,
			UserSvc:         usrSvc,
			ClassSvc:        clsSvc,
			AttendanceSvc:   attSvc,
			NotificationSvc: notifSvc,
			Validate:        validate,
			Translator:      translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

// setUpRepositories picks the storage backend: Postgres when DATABASE_URL is
// set, the in-memory store otherwise.
func setUpRepositories(conf *core.Config) (repositories, func() error, error) {
	if conf.DatabaseURL == "" {
		db, err := inmemdb.Open()
		if err != nil {
			return repositories{}, nil, err
		}
		repos := repositories{
			usr:   inmemdb.NewUserRepository(db),
			cls:   inmemdb.NewClassRepository(db),
			att:   inmemdb.NewAttendanceRepository(db),
			notif: inmemdb.NewNotificationRepository(db),
		}
		return repos, func() error { return nil }, nil
	}

	db, err := sqlxrepos.Open(conf)
	if err != nil {
		return repositories{}, nil, err
	}
	if err = sqlxrepos.CreateTables(db); err != nil {
		return repositories{}, nil, err
	}
	repos := repositories{
		usr:   sqlxrepos.NewUserRepository(db),
		cls:   sqlxrepos.NewClassRepository(db),
		att:   sqlxrepos.NewAttendanceRepository(db),
		notif: sqlxrepos.NewNotificationRepository(db),
	}
	return repos, db.Close, nil
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
