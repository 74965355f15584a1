package common

import (
	"shareit/src/db"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{})
	require.NoError(t, err)

	db.NewDB(gormDB)
	return mock
}

func userRows(id uint) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "email"}).
		AddRow(id, "Test User", "user@example.com")
}

func emptyUserRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "email"})
}

func itemRows(id, ownerID uint, available bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "description", "available", "owner_id"}).
		AddRow(id, "drill", "cordless drill", available, ownerID)
}

func bookingRows(id, itemID, bookerID uint, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "item_id", "booker_id", "status"}).
		AddRow(id, itemID, bookerID, status)
}
