package common

import (
	"shareit/src/types"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestGetUserNotFound(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).WillReturnRows(emptyUserRows())

	_, err := GetUser(99)
	assert.Error(t, err)
	assert.Equal(t, types.KindNotFound, types.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectCommit()

	user, err := CreateUser(&types.CreateUserRequestBody{
		Name:  "Anna",
		Email: "anna@example.com",
	})
	assert.NoError(t, err)
	assert.Equal(t, uint(3), user.ID)
	assert.Equal(t, "anna@example.com", user.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserDuplicateEmailConflict(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).WillReturnError(gorm.ErrDuplicatedKey)
	mock.ExpectRollback()

	_, err := CreateUser(&types.CreateUserRequestBody{
		Name:  "Anna",
		Email: "taken@example.com",
	})
	assert.Error(t, err)
	assert.Equal(t, types.KindConflict, types.KindOf(err))
	assert.Contains(t, err.Error(), "taken@example.com")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUserPartial(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).WillReturnRows(userRows(1))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	email := "fresh@example.com"
	user, err := UpdateUser(1, &types.UpdateUserRequestBody{Email: &email})
	assert.NoError(t, err)
	// Name untouched, email replaced.
	assert.Equal(t, "Test User", user.Name)
	assert.Equal(t, email, user.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUserDuplicateEmailConflict(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).WillReturnRows(userRows(1))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users"`).WillReturnError(gorm.ErrDuplicatedKey)
	mock.ExpectRollback()

	email := "taken@example.com"
	_, err := UpdateUser(1, &types.UpdateUserRequestBody{Email: &email})
	assert.Error(t, err)
	assert.Equal(t, types.KindConflict, types.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUserNotFound(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).WillReturnRows(emptyUserRows())

	err := DeleteUser(12)
	assert.Error(t, err)
	assert.Equal(t, types.KindNotFound, types.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
