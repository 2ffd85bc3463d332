package server

import (
	"errors"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	appconfig "github.com/nmh2003/shopchat/config"
)

// Migrate applies database migrations from the given directory.
// dir example: file://migrations
func Migrate(dir string, cfg *appconfig.Config, direction string, steps int) error {
	if dir == "" {
		dir = "file://migrations"
	}
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" && cfg != nil {
		var err error
		dsn, err = cfg.Storage.Postgres.DSN()
		if err != nil {
			return err
		}
	}
	if dsn == "" {
		return errors.New("no database DSN configured")
	}

	m, err := migrate.New(dir, dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	switch direction {
	case "up":
		if steps > 0 {
			err = m.Steps(steps)
		} else {
			err = m.Up()
		}
	case "down":
		if steps > 0 {
			err = m.Steps(-steps)
		} else {
			err = m.Down()
		}
	default:
		return fmt.Errorf("unknown direction: %s", direction)
	}
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}
