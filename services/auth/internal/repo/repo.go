package repo

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrUserAlreadyExist = errors.New("user already exist")
	ErrUserNotFound     = errors.New("user not found")
	ErrRefreshNotFound  = errors.New("refresh token not found")
)

type GormRepo struct {
	DB *gorm.DB
}
