package repo

import (
	"errors"

	"gorm.io/gorm"
)

type GormRepo struct {
	DB *gorm.DB
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExist   = errors.New("user already exist")
	ErrISBNTaken          = errors.New("isbn already taken")
)
