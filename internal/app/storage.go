package app

import (
	"context"

	"github.com/Egor213/LogOps/internal/config"
	"github.com/Egor213/LogOps/internal/repo"
	"github.com/Egor213/LogOps/internal/repo/sqlitedb"
	errorsUtils "github.com/Egor213/LogOps/pkg/errors"
	"github.com/Egor213/LogOps/pkg/postgres"
	"github.com/Egor213/LogOps/pkg/sqlite"
	log "github.com/sirupsen/logrus"
)

// setupStorage connects the configured backend and makes sure its schema
// exists. The returned func releases the connection.
func setupStorage(ctx context.Context, cfg *config.Config) (*repo.Repositories, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		log.WithField("path", cfg.SQLite.Path).Info("Opening SQLite store")
		db, err := sqlite.New(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, nil, errorsUtils.WrapPathErr(err)
		}
		if err := sqlitedb.Migrate(ctx, db.DB); err != nil {
			_ = db.Close()
			return nil, nil, errorsUtils.WrapPathErr(err)
		}
		closeFn := func() {
			if err := db.Close(); err != nil {
				log.Error(errorsUtils.WrapPathErr(err))
			}
		}
		return repo.NewSQLiteRepositories(db), closeFn, nil

	default:
		Migrate(cfg.PG.URL)

		log.Info("Connecting to DB")
		pg, err := postgres.New(ctx, cfg.PG.URL, postgres.MaxPoolSize(cfg.PG.MaxPoolSize))
		if err != nil {
			return nil, nil, errorsUtils.WrapPathErr(err)
		}
		log.Info("Connected to DB")
		return repo.NewRepositories(pg), pg.Close, nil
	}
}
