package repository

import (
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// MySQL and Postgres error codes for constraint violations.
const (
	mysqlDuplicateEntry  = 1062
	mysqlNoReferencedRow = 1452
	pgUniqueViolation    = "23505"
	pgForeignKey         = "23503"
)

// classify turns driver constraint errors into the repository sentinels
// and wraps everything else with op.
func classify(err error, op string) error {
	if err == nil {
		return nil
	}
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("%w: %s: %v", ErrDuplicate, op, err)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%w: %s: %v", ErrInvalidReference, op, err)
	}
	return errors.Wrap(err, op)
}

func isUniqueViolation(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == mysqlDuplicateEntry
	}
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintUnique ||
			se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	var pe *pq.Error
	if errors.As(err, &pe) {
		return string(pe.Code) == pgUniqueViolation
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == mysqlNoReferencedRow
	}
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	var pe *pq.Error
	if errors.As(err, &pe) {
		return string(pe.Code) == pgForeignKey
	}
	return false
}
