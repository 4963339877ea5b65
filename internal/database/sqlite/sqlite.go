package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/connorkuehl/pointsbot/internal/points"
)

//go:embed migrations/000001_create_tables.up.sql
var up string

var log = logrus.StandardLogger().WithFields(logrus.Fields{
	"component": "sqlite",
})

type Path string

// PathFromEnv reports the configured database path. An empty path means the
// SQLite backend is not in use.
func PathFromEnv() Path {
	return pathFromEnv(os.Getenv)
}

type DB struct {
	db *sql.DB
}

func New(path Path) (*DB, func(), error) {
	db, err := sql.Open("sqlite", string(path))
	if err != nil {
		return nil, nil, err
	}

	if _, err := db.Exec(up); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migrate %s: %w", path, err)
	}

	return &DB{db: db}, func() { _ = db.Close() }, nil
}

func (d *DB) Load(ctx context.Context) points.Document {
	doc, err := d.load(ctx)
	if err != nil {
		log.WithError(err).Warn("load ledger, using empty ledger")
		return points.Default()
	}
	return doc
}

func (d *DB) load(ctx context.Context) (points.Document, error) {
	doc := points.Default()

	var (
		role, text, media sql.NullString
		configured        bool
	)
	query := `SELECT role_id_allowed, reply_configured, reply_text, reply_media FROM settings WHERE id = 1`
	err := d.db.QueryRowContext(ctx, query).Scan(&role, &configured, &text, &media)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return points.Document{}, err
	default:
		if role.Valid && role.String != "" {
			doc.SetAuthorizedRole(role.String)
		}
		if configured {
			reply := points.NewReplyConfig(text.String, media.String)
			doc.Reply = &reply
		}
	}

	rows, err := d.db.QueryContext(ctx, `SELECT user_id, points FROM balances`)
	if err != nil {
		return points.Document{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			userID string
			amount float64
		)
		if err := rows.Scan(&userID, &amount); err != nil {
			return points.Document{}, err
		}
		doc.Balances[userID] = amount
	}

	return doc, rows.Err()
}

// Save replaces the stored document in a single transaction.
func (d *DB) Save(ctx context.Context, doc points.Document) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var role, text, media sql.NullString
	if doc.AuthorizedRoleID != nil {
		role = sql.NullString{String: *doc.AuthorizedRoleID, Valid: true}
	}
	configured := doc.Reply != nil
	if configured && doc.Reply.Text != nil {
		text = sql.NullString{String: *doc.Reply.Text, Valid: true}
	}
	if configured && doc.Reply.Media != nil {
		media = sql.NullString{String: *doc.Reply.Media, Valid: true}
	}

	query := `INSERT OR REPLACE INTO settings (
		id,
		created_at,
		updated_at,
		role_id_allowed,
		reply_configured,
		reply_text,
		reply_media
		) VALUES (1, COALESCE((SELECT created_at FROM settings WHERE id = 1), datetime('now')), datetime('now'), $1, $2, $3, $4)`
	args := []any{role, configured, text, media}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM balances`); err != nil {
		return fmt.Errorf("clear balances: %w", err)
	}

	for userID, amount := range doc.Balances {
		query := `INSERT INTO balances (user_id, points) VALUES ($1, $2)`
		if _, err := tx.ExecContext(ctx, query, userID, amount); err != nil {
			return fmt.Errorf("save balance for %s: %w", userID, err)
		}
	}

	return tx.Commit()
}
