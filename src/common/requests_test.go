package common

import (
	"shareit/src/types"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestGetRequestNotFound(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).WillReturnRows(userRows(1))
	mock.ExpectQuery(`SELECT (.+) FROM "requests"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "description", "requestor_id"}))

	_, err := GetRequest(1, 8)
	assert.Error(t, err)
	assert.Equal(t, types.KindNotFound, types.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRequest(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).WillReturnRows(userRows(1))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "requests"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))
	mock.ExpectCommit()

	request, err := CreateRequest(1, &types.CreateRequestRequestBody{
		Description: "need a ladder for the weekend",
	})
	assert.NoError(t, err)
	assert.Equal(t, uint(4), request.ID)
	assert.Equal(t, uint(1), request.RequestorID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListOtherRequestsInvalidPage(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).WillReturnRows(userRows(1))

	_, err := ListOtherRequests(1, 0, -3)
	assert.Error(t, err)
	assert.Equal(t, types.KindValidation, types.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
