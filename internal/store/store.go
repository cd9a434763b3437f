package store

import (
	"database/sql"

	_ "github.com/duckdb/duckdb-go/v2"
)

// Store provides access to all storage repositories.
type Store struct {
	db      *sql.DB
	dataset *DatasetStore
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:      db,
		dataset: NewDatasetStore(db),
	}
}

func (s *Store) Dataset() *DatasetStore {
	return s.dataset
}

func (s *Store) Close() error {
	return s.db.Close()
}

// NewDB opens a DuckDB database. Use ":memory:" (or "") for a purely
// in-memory database, which is all this service needs: the dataset is
// reloaded from the CSV at every start.
func NewDB(path string) (*sql.DB, error) {
	if path == ":memory:" {
		path = ""
	}
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
