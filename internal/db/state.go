package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"
)

// fetches the stored JSON value for a (user, key) pair.
// returns nil, nil when the key has never been written.
func GetState(userID int, key string) ([]byte, error) {
	var value []byte
	query := `
	SELECT value
	FROM user_state
	WHERE user_id = $1 AND key = $2;
	`
	err := DB.Get(&value, query, userID, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		log.Error().Msg("failed to get user state")
		return nil, err
	}
	return value, nil
}

// writes the whole JSON value for a (user, key) pair, replacing any
// previous value. last write wins.
func SetState(userID int, key string, value []byte) error {
	query := `
	INSERT INTO user_state (user_id, key, value, updated_at)
	VALUES ($1, $2, $3, now())
	ON CONFLICT (user_id, key)
	DO UPDATE SET value = EXCLUDED.value, updated_at = now();
	`
	if _, err := DB.Exec(query, userID, key, value); err != nil {
		log.Error().Msg("failed to set user state")
		return err
	}
	return nil
}

// removes a single stored key for a user. missing keys are not an error.
func DeleteState(userID int, key string) error {
	query := `
	DELETE FROM user_state
	WHERE user_id = $1 AND key = $2;
	`
	if _, err := DB.Exec(query, userID, key); err != nil {
		log.Error().Msg("failed to delete user state")
		return err
	}
	return nil
}
