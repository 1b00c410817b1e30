package testsupport

import (
	"database/sql"
	"fmt"
	"sync/atomic"

	_ "github.com/mattn/go-sqlite3"
)

var memoryDBSeq atomic.Uint64

// NewSQLiteMemoryDB opens a private in-memory SQLite database. Every call
// gets its own database, which lives until the returned handle is closed.
func NewSQLiteMemoryDB() (*sql.DB, error) {
	name := fmt.Sprintf("file:configi18n_test_%d?mode=memory&cache=shared&_fk=1", memoryDBSeq.Add(1))
	return sql.Open("sqlite3", name)
}
