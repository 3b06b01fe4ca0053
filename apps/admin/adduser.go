package main

import (
	"fmt"

	"github.com/hekima/shule/core"
	"github.com/hekima/shule/core/user"
)

// addUser creates a user.User from the command line.
func (cli *commandLine) addUser(uname, email, fullName, role, pwd string) error {
	uname = core.CleanString(uname, true /* lower */)
	email = core.CleanString(email, true /* lower */)

	r := user.Role(core.CleanString(role, true /* lower */))
	if !r.Valid() {
		return fmt.Errorf("unknown role %q; must be one of: student, teacher, admin", role)
	}

	if _, err := cli.usrSvc.GetByUsernameOrEmail(uname); err == nil {
		return user.ErrUsernameExists
	} else if err != user.ErrNotFound {
		return err
	}
	if _, err := cli.usrSvc.GetByUsernameOrEmail(email); err == nil {
		return user.ErrEmailExists
	} else if err != user.ErrNotFound {
		return err
	}

	_, err := cli.usrSvc.Create(user.NewUser{
		Username: uname,
		Password: pwd,
		Role:     r,
		FullName: core.CleanString(fullName),
		Email:    email,
	})
	return err
}
