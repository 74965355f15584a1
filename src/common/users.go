package common

import (
	"errors"
	"fmt"
	"shareit/src/db"
	"shareit/src/models"
	"shareit/src/types"

	"gorm.io/gorm"
)

// findUser is the first check of every operation that acts on behalf of a
// user: the acting identity must exist before anything else runs.
func findUser(tx *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	err := tx.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NewNotFoundError(fmt.Sprintf("user with id %d not found", id))
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func GetUsers() ([]models.User, error) {
	var users []models.User
	if err := db.GetDb().Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func GetUser(id uint) (*models.User, error) {
	return findUser(db.GetDb(), id)
}

func CreateUser(params *types.CreateUserRequestBody) (*models.User, error) {
	user := models.User{
		Name:  params.Name,
		Email: params.Email,
	}
	if err := db.GetDb().Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, types.NewConflictError(fmt.Sprintf("user with email %s already exists", params.Email))
		}
		return nil, err
	}
	return &user, nil
}

// UpdateUser applies a partial update; a nil field means "leave
// unchanged".
func UpdateUser(id uint, params *types.UpdateUserRequestBody) (*models.User, error) {
	dbc := db.GetDb()
	user, err := findUser(dbc, id)
	if err != nil {
		return nil, err
	}
	if params.Name != nil {
		user.Name = *params.Name
	}
	if params.Email != nil {
		user.Email = *params.Email
	}
	if err := dbc.Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, types.NewConflictError(fmt.Sprintf("user with email %s already exists", user.Email))
		}
		return nil, err
	}
	return user, nil
}

func DeleteUser(id uint) error {
	dbc := db.GetDb()
	user, err := findUser(dbc, id)
	if err != nil {
		return err
	}
	return dbc.Delete(user).Error
}
