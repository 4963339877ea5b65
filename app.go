package main

import (
	"github.com/connorkuehl/pointsbot/internal/bot"
	"github.com/connorkuehl/pointsbot/internal/database"
	"github.com/connorkuehl/pointsbot/internal/database/jsonfile"
	"github.com/connorkuehl/pointsbot/internal/database/sqlite"
	"github.com/connorkuehl/pointsbot/internal/health"

	log "github.com/sirupsen/logrus"
)

type App struct {
	Bot    *bot.Bot
	Health *health.Server
}

// provideStore picks SQLite when POINTS_SQLITE_DB_PATH is set and the JSON
// file otherwise.
func provideStore() (database.Store, func(), error) {
	if path := sqlite.PathFromEnv(); path != "" {
		db, cleanup, err := sqlite.New(path)
		if err != nil {
			return nil, nil, err
		}
		log.WithField("path", path).Info("using sqlite ledger")
		return db, cleanup, nil
	}

	store := jsonfile.New(jsonfile.PathFromEnv())
	log.WithField("path", store.Path()).Info("using json ledger")
	return store, func() {}, nil
}
