// Package dberr maps driver errors onto API errors.
package dberr

import (
	"database/sql"

	"github.com/pkg/errors"
	"github.com/uptrace/bun/driver/pgdriver"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/labtrack/lims/internal/pkg/limserr"
)

// Translate turns missing rows into limserr.ErrNotFound and constraint failures
// from either PostgreSQL or SQLite into limserr.ErrIntegrityViolation. Any other
// error is returned with a stack attached.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := limserr.From(err); ok {
		return err
	}

	if errors.Is(err, sql.ErrNoRows) {
		return limserr.ErrNotFound
	}

	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) && pgErr.IntegrityViolation() {
		return limserr.ErrIntegrityViolation.
			Msg("integrity violation: %s", pgErr.Field('M')).
			WithExtras(limserr.Extras{"constraint": pgErr.Field('n')})
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) && liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		return limserr.ErrIntegrityViolation.Msg("integrity violation: %s", liteErr.Error())
	}

	return errors.WithStack(err)
}

// IsIntegrityViolation reports whether err was translated from a constraint failure.
func IsIntegrityViolation(err error) bool {
	return errors.Is(Translate(err), limserr.ErrIntegrityViolation)
}
