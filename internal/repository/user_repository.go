package repository

import (
	"context"
	"edu_testing_backend/internal/model"
	"edu_testing_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return translate(conn(ctx, r.DB).Create(user).Error, nil, util.ErrEmailRegistered)
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := conn(ctx, r.DB).First(&user, id).Error
	if err != nil {
		return nil, translate(err, util.ErrUserNotFound, nil)
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := conn(ctx, r.DB).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, translate(err, util.ErrUserNotFound, nil)
	}
	return &user, nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	err := conn(ctx, r.DB).Model(&model.User{}).Where("id = ?", id).Update("last_login", at).Error
	return translate(err, nil, nil)
}
