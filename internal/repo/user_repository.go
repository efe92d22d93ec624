package repo

import (
	"errors"

	"github.com/rogerio-castellano/rfid-pos/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	GetByUsername(username string) (models.User, error)
	CreateUser(u models.User) (models.User, error)
}
