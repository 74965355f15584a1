package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"strings"
	"testing"

	"shareit/src/db"
	"shareit/src/middlewares"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/tidwall/gjson"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type TestSuite struct {
	suite.Suite
	Mock   sqlmock.Sqlmock
	Router *gin.Engine
}

func (s *TestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	router := setupRouter()
	userHandlers(router.Group(""))
	identified := router.Group("")
	identified.Use(middlewares.IdentityMiddleware)
	itemHandlers(identified)
	bookingHandlers(identified)
	requestHandlers(identified)
	s.Router = router
}

func (s *TestSuite) SetupTest() {
	conn, mock, err := sqlmock.New()
	if err != nil {
		s.T().Fatalf("An error '%s' was not expected when opening a stub database connection", err)
	}
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{})
	if err != nil {
		s.T().Fatalf("An error '%s' was not expected when opening gorm database", err)
	}
	db.NewDB(gormDB)
	s.Mock = mock
}

func (s *TestSuite) serve(method, path, body string, userId string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userId != "" {
		req.Header.Set("X-Sharer-User-Id", userId)
	}
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

func (s *TestSuite) TestHealthcheck() {
	w := s.serve(http.MethodGet, "/", "", "")
	s.Equal(http.StatusOK, w.Code)
}

func (s *TestSuite) TestMissingIdentityHeader() {
	w := s.serve(http.MethodGet, "/bookings", "", "")
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(gjson.Get(w.Body.String(), "error").String(), "X-Sharer-User-Id")
}

func (s *TestSuite) TestInvalidIdentityHeader() {
	w := s.serve(http.MethodGet, "/bookings", "", "zero")
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *TestSuite) TestInvalidApprovedParam() {
	w := s.serve(http.MethodPatch, "/bookings/1?approved=maybe", "", "1")
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(gjson.Get(w.Body.String(), "error").String(), "approved")
}

func (s *TestSuite) TestUnknownStateQuery() {
	s.Mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}).
			AddRow(1, "Test User", "user@example.com"))

	w := s.serve(http.MethodGet, "/bookings?state=SOON", "", "1")
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Unknown state: SOON", gjson.Get(w.Body.String(), "error").String())
	s.NoError(s.Mock.ExpectationsWereMet())
}

func (s *TestSuite) TestCreateBookingMalformedBody() {
	w := s.serve(http.MethodPost, "/bookings", `{"start":"2030-01-01 10:00:00 +00:00"}`, "1")
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *TestSuite) TestCreateUserInvalidEmail() {
	w := s.serve(http.MethodPost, "/users", `{"name":"Anna","email":"not-an-email"}`, "")
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *TestSuite) TestCreateUserConflictStatus() {
	s.Mock.ExpectBegin()
	s.Mock.ExpectQuery(`INSERT INTO "users"`).WillReturnError(gorm.ErrDuplicatedKey)
	s.Mock.ExpectRollback()

	w := s.serve(http.MethodPost, "/users", `{"name":"Anna","email":"taken@example.com"}`, "")
	s.Equal(http.StatusConflict, w.Code)
	s.NoError(s.Mock.ExpectationsWereMet())
}

func TestMainSuite(t *testing.T) {
	suite.Run(t, new(TestSuite))
}

func TestInitLoggerCreatesLogDir(t *testing.T) {
	prev := gin.DefaultWriter
	t.Cleanup(func() { gin.DefaultWriter = prev })
	t.Chdir(t.TempDir())

	initLogger()

	_, err := os.Stat(path.Join("logs", "api.log"))
	assert.NoError(t, err)
}
