package sqlxrepos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/hekima/shule/core/user"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) CheckUsernameUniqueness(username, email string) error {
	var taken struct {
		Username bool `db:"username_taken"`
		Email    bool `db:"email_taken"`
	}
	err := repo.db.Get(&taken, `
		SELECT EXISTS (SELECT 1 FROM users WHERE username = $1) AS username_taken,
		       EXISTS (SELECT 1 FROM users WHERE email = $2)    AS email_taken`,
		username, email,
	)
	if err != nil {
		return err
	}
	if taken.Username {
		return user.ErrUsernameExists
	}
	if taken.Email {
		return user.ErrEmailExists
	}
	return nil
}

func (repo *userRepository) CreateUser(usr user.User) (user.User, error) {
	err := repo.db.QueryRow(`
		INSERT INTO users (username, full_name, email, role, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		usr.Username, usr.FullName, usr.Email, usr.Role, usr.PasswordHash, usr.CreatedAt,
	).Scan(&usr.ID)
	return usr, err
}

func (repo *userRepository) QueryAllUsers() ([]user.User, error) {
	users := make([]user.User, 0)
	err := repo.db.Select(&users, `SELECT * FROM users ORDER BY id`)
	return users, err
}

func (repo *userRepository) GetUserByID(id int) (user.User, error) {
	var usr user.User
	err := repo.db.Get(&usr, `SELECT * FROM users WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return user.User{}, user.ErrNotFound
	}
	return usr, err
}

func (repo *userRepository) GetUserByUsername(username string) (user.User, error) {
	var usr user.User
	err := repo.db.Get(&usr, `SELECT * FROM users WHERE username = $1`, username)
	if err == sql.ErrNoRows {
		return user.User{}, user.ErrNotFound
	}
	return usr, err
}

func (repo *userRepository) GetUserByUsernameOrEmail(username string) (user.User, error) {
	var usr user.User
	err := repo.db.Get(&usr, `SELECT * FROM users WHERE username = $1 OR email = $1`, username)
	if err == sql.ErrNoRows {
		return user.User{}, user.ErrNotFound
	}
	return usr, err
}
