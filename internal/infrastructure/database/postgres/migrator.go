package postgres

import (
	"database/sql"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"

	"github.com/biotext/bioground/internal/config"
	"github.com/biotext/bioground/internal/infrastructure/monitoring/logging"
	apperrors "github.com/biotext/bioground/pkg/errors"
)

// Migrate applies all pending schema migrations from cfg.MigrationPath
// (a file:// URL or plain directory path).  Already-current schemas are a
// no-op.  Uses database/sql with lib/pq because golang-migrate drives a
// *sql.DB, not a pgx pool.
func Migrate(cfg config.DatabaseConfig, log logging.Logger) error {
	if log == nil {
		log = logging.NewNopLogger()
	}
	if cfg.MigrationPath == "" {
		log.Debug("no migration path configured; skipping schema migration")
		return nil
	}

	db, err := sql.Open("postgres", DSN(cfg))
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to open migration connection")
	}
	defer db.Close()

	driver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to init migration driver")
	}

	src := cfg.MigrationPath
	if len(src) < 7 || src[:7] != "file://" {
		src = "file://" + src
	}
	m, err := migrate.NewWithDatabaseInstance(src, cfg.DBName, driver)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to init migrator")
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "schema migration failed")
	}

	version, dirty, _ := m.Version()
	log.Info("schema migrations applied",
		logging.Int64("version", int64(version)), logging.Bool("dirty", dirty))
	return nil
}

//Personal.AI order the ending
