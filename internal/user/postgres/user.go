package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/frahmantamala/expense-tracking/internal"
	"github.com/frahmantamala/expense-tracking/internal/entitycheck"
	"github.com/frahmantamala/expense-tracking/internal/user"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByUserName(userName string) (*user.User, error) {
	var u user.User
	err := r.db.Where("user_name = ?", userName).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrInvalidCredentials
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindActive(id int64) (*user.User, error) {
	return entitycheck.Find[user.User](r.db, id, "User")
}
