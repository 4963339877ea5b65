package sqlite

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

func NewInMemory() (*DB, func(), error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, func() {}, err
	}

	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(up)
	if err != nil {
		db.Close()
		return nil, func() {}, err
	}

	return &DB{db}, func() { db.Close() }, nil
}
