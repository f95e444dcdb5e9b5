package db

import (
	"database/sql"
	"strings"

	"github.com/mattn/go-sqlite3"

	"github.com/teranos/bdaresume/errors"
)

// ErrDatabaseClosed marks operations attempted on a closed ledger connection
var ErrDatabaseClosed = errors.New("database is closed")

// ErrDatabaseBusy marks operations that gave up waiting for another writer's lock
var ErrDatabaseBusy = errors.New("database is busy")

// Wrapf annotates a database/sql error and marks the closed and busy
// conditions so callers can test for them with errors.Is.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}

	var sqliteErr sqlite3.Error
	switch {
	case errors.Is(err, sql.ErrConnDone), strings.Contains(err.Error(), "database is closed"):
		// database/sql reports a closed *sql.DB with an unexported error value
		err = errors.Mark(err, ErrDatabaseClosed)
	case errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked):
		err = errors.WithHintf(errors.Mark(err, ErrDatabaseBusy),
			"another bda process is writing the job ledger; retry once it finishes (busy timeout %dms)", SQLiteBusyTimeoutMS)
	}
	return errors.Wrapf(err, format, args...)
}

// IsDatabaseClosed reports whether err came from a closed ledger connection
func IsDatabaseClosed(err error) bool {
	return errors.Is(err, ErrDatabaseClosed)
}
