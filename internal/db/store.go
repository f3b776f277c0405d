// exposes a Store interface that is passed to API calls w/ param requirements
package db

import (
	"github.com/jmoiron/sqlx"

	"github.com/jummah-prayer/server/internal/model"
)

type Store interface {
	// user functions
	CreateUser(email, hashedPassword string, name *string) (int, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	UpdateUserProfile(id int, email string, name *string) error
	UpdatePassword(id int, hashedPassword string) error
	TouchLastLogin(id int) error
	CountUsers() (int, error)

	// per-user key/value state
	GetState(userID int, key string) ([]byte, error)
	SetState(userID int, key string, value []byte) error
	DeleteState(userID int, key string) error
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
// required so linter doesn't complain
var _ Store = (*pgStore)(nil)

func NewStore() Store {
	return &pgStore{db: DB}
}

func (s *pgStore) CreateUser(email, hashedPassword string, name *string) (int, error) {
	return CreateUser(email, hashedPassword, name)
}

func (s *pgStore) GetUserByEmail(email string) (*model.User, error) {
	return GetUserByEmail(email)
}

func (s *pgStore) GetUserByID(id int) (*model.User, error) {
	return GetUserByID(id)
}

func (s *pgStore) UpdateUserProfile(id int, email string, name *string) error {
	return UpdateUserProfile(id, email, name)
}

func (s *pgStore) UpdatePassword(id int, hashedPassword string) error {
	return UpdatePassword(id, hashedPassword)
}

func (s *pgStore) TouchLastLogin(id int) error {
	return TouchLastLogin(id)
}

func (s *pgStore) CountUsers() (int, error) {
	return CountUsers()
}

func (s *pgStore) GetState(userID int, key string) ([]byte, error) {
	return GetState(userID, key)
}

func (s *pgStore) SetState(userID int, key string, value []byte) error {
	return SetState(userID, key, value)
}

func (s *pgStore) DeleteState(userID int, key string) error {
	return DeleteState(userID, key)
}
