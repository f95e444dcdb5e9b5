package db

import (
	"database/sql"
	"testing"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/bdaresume/errors"
)

func TestWrapf(t *testing.T) {
	assert.NoError(t, Wrapf(nil, "list jobs"))

	tests := []struct {
		name   string
		err    error
		closed bool
		busy   bool
	}{
		{"closed sql.DB", errors.New("sql: database is closed"), true, false},
		{"connection done", sql.ErrConnDone, true, false},
		{"busy", sqlite3.Error{Code: sqlite3.ErrBusy}, false, true},
		{"locked", sqlite3.Error{Code: sqlite3.ErrLocked}, false, true},
		{"other", errors.New("no such table: bda_jobs"), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Wrapf(tt.err, "list jobs")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "list jobs")
			assert.Equal(t, tt.closed, IsDatabaseClosed(err))
			assert.Equal(t, tt.busy, errors.Is(err, ErrDatabaseBusy))
			if tt.busy {
				assert.NotEmpty(t, errors.GetAllHints(err))
			}
		})
	}
}

func TestWrapf_ClosedConnection(t *testing.T) {
	conn, err := Open(":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	_, err = conn.Exec("SELECT 1")
	assert.True(t, IsDatabaseClosed(Wrapf(err, "select")))
}
