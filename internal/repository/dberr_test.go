package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/doug-martin/goqu/v9"
	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hbnb/internal/model"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"mysql duplicate", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, ErrDuplicate},
		{"mysql fk", &mysql.MySQLError{Number: 1452}, ErrInvalidReference},
		{"postgres unique", &pq.Error{Code: "23505"}, ErrDuplicate},
		{"postgres fk", &pq.Error{Code: "23503"}, ErrInvalidReference},
		{"sqlite unique", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, ErrDuplicate},
		{"sqlite primary key", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintPrimaryKey}, ErrDuplicate},
		{"sqlite fk", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}, ErrInvalidReference},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, classify(tc.err, "insert users"), tc.want)
		})
	}

	other := classify(errors.New("connection reset"), "insert users")
	assert.NotErrorIs(t, other, ErrDuplicate)
	assert.Contains(t, other.Error(), "insert users")
	assert.NoError(t, classify(nil, "noop"))
}

func mockStore(t *testing.T, dialect string) (*SQL[model.Amenity, *model.Amenity], sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQL[model.Amenity](goqu.New(dialect, db), amenitySchema), mock
}

func TestSQLAddMapsDriverDuplicate(t *testing.T) {
	drivers := map[string]error{
		"mysql":    &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'wifi' for key 'uq_amenities_name'"},
		"postgres": &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"},
	}
	for dialect, driverErr := range drivers {
		t.Run(dialect, func(t *testing.T) {
			repo, mock := mockStore(t, dialect)
			a := &model.Amenity{Base: model.NewBase(clock), Name: "WiFi"}

			mock.ExpectBegin()
			mock.ExpectQuery("SELECT COUNT").WithArgs(a.ID).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
			mock.ExpectExec("INSERT INTO").WillReturnError(driverErr)
			mock.ExpectRollback()

			err := repo.Add(context.Background(), a)
			assert.ErrorIs(t, err, ErrDuplicate)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSQLAddRejectsExistingID(t *testing.T) {
	repo, mock := mockStore(t, "mysql")
	a := &model.Amenity{Base: model.NewBase(clock), Name: "WiFi"}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT").WithArgs(a.ID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	assert.ErrorIs(t, repo.Add(context.Background(), a), ErrDuplicateID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLGetByAttributeRejectsUnknownColumn(t *testing.T) {
	repo, mock := mockStore(t, "postgres")
	_, err := repo.GetByAttribute(context.Background(), "name; DROP TABLE amenities", "x")
	assert.ErrorIs(t, err, ErrUnknownAttribute)
	assert.NoError(t, mock.ExpectationsWereMet())
}
