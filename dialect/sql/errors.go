package sql

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"

	"github.com/syssam/nexus"
)

// PostgreSQL SQLSTATE codes for constraint violations (Class 23).
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// MySQL error numbers for constraint violations.
const (
	mysqlDuplicateEntry         = 1062
	mysqlForeignKeyParent       = 1451 // Cannot delete or update a parent row
	mysqlForeignKeyChild        = 1452 // Cannot add or update a child row
	mysqlCheckConstraintViolate = 3819
)

// WrapConstraint converts driver-level constraint violations into a
// nexus constraint error, leaving all other errors untouched. The
// original driver error stays reachable through errors.As.
func WrapConstraint(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case IsUniqueConstraintError(err):
		return nexus.NewConstraintError("unique violation: "+err.Error(), err)
	case IsForeignKeyConstraintError(err):
		return nexus.NewConstraintError("foreign key violation: "+err.Error(), err)
	case IsCheckConstraintError(err):
		return nexus.NewConstraintError("check violation: "+err.Error(), err)
	}
	return err
}

// IsConstraintError returns true if the error resulted from a database
// constraint violation.
func IsConstraintError(err error) bool {
	return nexus.IsConstraintError(err) ||
		IsUniqueConstraintError(err) ||
		IsForeignKeyConstraintError(err) ||
		IsCheckConstraintError(err)
}

// errorCoder is an interface for database errors that provide error codes.
// Implemented by pgx and other PostgreSQL-protocol drivers.
type errorCoder interface {
	Code() string
}

// errorNumberer is an interface for database errors that provide numeric
// error codes, the MySQL wire-protocol convention.
type errorNumberer interface {
	Number() uint16
}

// sqlStateError is an interface for errors that provide SQLSTATE codes.
// Implemented by pq.Error, pgx, and some MySQL drivers.
type sqlStateError interface {
	SQLState() string
}

// IsUniqueConstraintError reports if the error resulted from a DB uniqueness
// constraint violation. e.g. duplicate value in unique index.
func IsUniqueConstraintError(err error) bool {
	return isConstraintErr(err, constraintCodes{
		pgCode:    pgUniqueViolation,
		mysqlNums: []uint16{mysqlDuplicateEntry},
		fallbacks: []string{
			"Error 1062",                 // MySQL (string fallback)
			"violates unique constraint", // Postgres (string fallback)
			"UNIQUE constraint failed",   // SQLite
		},
	})
}

// IsForeignKeyConstraintError reports if the error resulted from a database
// foreign-key constraint violation. e.g. parent row does not exist.
func IsForeignKeyConstraintError(err error) bool {
	return isConstraintErr(err, constraintCodes{
		pgCode:    pgForeignKeyViolation,
		mysqlNums: []uint16{mysqlForeignKeyParent, mysqlForeignKeyChild},
		fallbacks: []string{
			"Error 1451",                      // MySQL (Cannot delete or update a parent row)
			"Error 1452",                      // MySQL (Cannot add or update a child row)
			"violates foreign key constraint", // Postgres
			"FOREIGN KEY constraint failed",   // SQLite
		},
	})
}

// IsCheckConstraintError reports if the error resulted from a database check
// constraint violation. e.g. a value does not satisfy a check condition.
func IsCheckConstraintError(err error) bool {
	return isConstraintErr(err, constraintCodes{
		pgCode:    pgCheckViolation,
		mysqlNums: []uint16{mysqlCheckConstraintViolate},
		fallbacks: []string{
			"Error 3819",                // MySQL
			"violates check constraint", // Postgres
			"CHECK constraint failed",   // SQLite
		},
	})
}

// constraintCodes names one constraint class across drivers.
type constraintCodes struct {
	pgCode    string
	mysqlNums []uint16
	fallbacks []string
}

func isConstraintErr(err error, codes constraintCodes) bool {
	if err == nil {
		return false
	}

	// Concrete driver errors carry their codes as struct fields, not
	// methods, so interface probing alone cannot see them.
	var pqerr *pq.Error
	if errors.As(err, &pqerr) {
		return string(pqerr.Code) == codes.pgCode
	}
	var myerr *mysql.MySQLError
	if errors.As(err, &myerr) {
		for _, num := range codes.mysqlNums {
			if myerr.Number == num {
				return true
			}
		}
		return false
	}

	// Check for SQLSTATE code (pgx and friends).
	if e, ok := asError[sqlStateError](err); ok {
		if e.SQLState() == codes.pgCode {
			return true
		}
	}

	// Check for generic error codes.
	if e, ok := asError[errorCoder](err); ok {
		if e.Code() == codes.pgCode {
			return true
		}
	}

	// Check for MySQL-style error numbers.
	if e, ok := asError[errorNumberer](err); ok {
		num := e.Number()
		for _, want := range codes.mysqlNums {
			if num == want {
				return true
			}
		}
	}

	// Fallback to string matching for drivers that implement none of the above.
	return containsAny(err.Error(), codes.fallbacks...)
}

// asError attempts to extract an error implementing interface T from the error chain.
func asError[T any](err error) (T, bool) {
	var target T
	for err != nil {
		if e, ok := err.(T); ok {
			return e, true
		}
		err = errors.Unwrap(err)
	}
	return target, false
}

// containsAny returns true if s contains any of the substrings.
func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
