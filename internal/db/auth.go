package db

import (
	"database/sql"
	"errors"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/jummah-prayer/server/internal/model"
)

// inserts new user into table, returns new user ID.
func CreateUser(email, hashedPassword string, name *string) (int, error) {
	query := `
	INSERT INTO users (email, hashed_password, name, created_at, updated_at)
	VALUES ($1, $2, $3, now(), now())
	RETURNING id;
	`
	var newID int
	err := DB.QueryRow(query, email, hashedPassword, name).Scan(&newID)
	if err != nil {
		log.Error().Msg("failed to create user")
		return 0, err
	}
	return newID, nil
}

// fetches user by email. returns nil, sql.ErrNoRows if not found.
func GetUserByEmail(email string) (*model.User, error) {
	var u model.User
	query := `
	SELECT id, email, hashed_password, name, last_login, created_at, updated_at
	FROM users
	WHERE email = $1;
	`
	err := DB.Get(&u, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Msg("failed to get user by email")
		return nil, err
	}
	return &u, nil
}

// fetches a user by ID. Returns nil, sql.ErrNoRows if not found.
func GetUserByID(id int) (*model.User, error) {
	var u model.User
	query := `
	SELECT id, email, hashed_password, name, last_login, created_at, updated_at
	FROM users
	WHERE id = $1;
	`
	err := DB.Get(&u, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Msg("failed to get user by id")
		return nil, err
	}
	return &u, nil
}

// updates a user's email and name, and bumps updated_at.
// returns an error if no rows were affected (e.g. user ID doesn't exist).
func UpdateUserProfile(id int, email string, name *string) error {
	query := `
	UPDATE users
	SET email = $2,
	name = $3,
	updated_at = now()
	WHERE id = $1;
	`
	res, err := DB.Exec(query, id, email, name)
	if err != nil {
		log.Error().Msg("failed to update user profile - exec")
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		log.Error().Msg("failed to update user profile - rows affected")
		return err
	}
	if rows == 0 {
		log.Error().Msg("failed to update user profile - no such user")
		return errors.New("no such user")
	}
	return nil
}

// replaces a user's password hash and bumps updated_at.
func UpdatePassword(id int, hashedPassword string) error {
	query := `
	UPDATE users
	SET hashed_password = $2,
	updated_at = now()
	WHERE id = $1;
	`
	res, err := DB.Exec(query, id, hashedPassword)
	if err != nil {
		log.Error().Msg("failed to update password - exec")
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		log.Error().Msg("failed to update password - rows affected")
		return err
	}
	if rows == 0 {
		return errors.New("no such user")
	}
	return nil
}

// records the time of a successful login.
func TouchLastLogin(id int) error {
	query := `
	UPDATE users
	SET last_login = now()
	WHERE id = $1;
	`
	if _, err := DB.Exec(query, id); err != nil {
		log.Error().Msg("failed to touch last login")
		return err
	}
	return nil
}

// total number of registered users.
func CountUsers() (int, error) {
	var n int
	if err := DB.Get(&n, `SELECT count(*) FROM users;`); err != nil {
		log.Error().Msg("failed to count users")
		return 0, err
	}
	return n, nil
}
