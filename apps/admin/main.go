package main

import (
	"log"
	"os"

	"github.com/hekima/shule/core"
	"github.com/hekima/shule/core/user"
	inmemdb "github.com/hekima/shule/storage/database/inmem"
	sqlxrepos "github.com/hekima/shule/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	// set up DB
	usrRepo, err := setUpUserRepository(conf)
	errAndDie(err)

	// start CLI
	cli := commandLine{
		usrSvc: user.NewService(usrRepo),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func setUpUserRepository(conf *core.Config) (user.Repository, error) {
	if conf.DatabaseURL == "" {
		db, err := inmemdb.Open()
		if err != nil {
			return nil, err
		}
		return inmemdb.NewUserRepository(db), nil
	}

	db, err := sqlxrepos.Open(conf)
	if err != nil {
		return nil, err
	}
	if err = sqlxrepos.CreateTables(db); err != nil {
		return nil, err
	}
	return sqlxrepos.NewUserRepository(db), nil
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
