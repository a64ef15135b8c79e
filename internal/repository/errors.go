// Package repository contains data access logic separated from services and
// HTTP handlers.  Every query uses bound parameters.  Errors leaving this
// package are already classified: wrap is the single place where driver
// errors become apperror values.
package repository

import (
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/carlosargenal/enlaceibabackend/internal/apperror"
)

// ErrDuplicate marks a unique-key violation (MySQL error 1062).  It is
// reachable through errors.Is on the classified error.
var ErrDuplicate = errors.New("duplicate entry")

const mysqlDuplicateEntry = 1062

// wrap classifies err for the given resource: missing rows become NOT_FOUND,
// unique-key violations become VALIDATION_ERROR, already classified errors
// pass through and everything else becomes DATABASE_ERROR.
func wrap(resource string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperror.NotFound(resource)
	}
	if isDuplicate(err) {
		return &apperror.Error{
			Kind:    apperror.KindValidation,
			Message: resource + " already exists",
			Err:     ErrDuplicate,
		}
	}
	return apperror.Normalize(err)
}

func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}
