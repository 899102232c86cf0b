package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"doctor-booking/config"
	"doctor-booking/internal/infrastructure/database"
	"doctor-booking/migrations"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	configPath := flag.String("config", ".env", "path to the env file")
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	if cfg.DB.Driver != config.DriverPostgres {
		logrus.Fatalf("Migrations only apply to the %s driver, DB_DRIVER is %s", config.DriverPostgres, cfg.DB.Driver)
	}

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		logrus.Fatalf("Failed to open embedded migrations: %v", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, database.PostgresURL("pgx5", cfg.DB))
	if err != nil {
		logrus.Fatalf("Migration init failed: %v", err)
	}
	defer m.Close()

	m.Log = &migrateLogger{log: logrus.StandardLogger()}

	switch args[0] {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			logrus.Fatalf("Up failed: %v", err)
		}
		logrus.Info("Migrations: up completed")

	case "down":
		steps := 1
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				logrus.Fatalf("Down: invalid steps argument %q", args[1])
			}
			steps = n
		}
		if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			logrus.Fatalf("Down failed: %v", err)
		}
		logrus.WithField("steps", steps).Info("Migrations: down completed")

	case "version":
		v, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			logrus.Fatalf("Version failed: %v", err)
		}
		fmt.Printf("version: %d  dirty: %v\n", v, dirty)

	case "force":
		if len(args) < 2 {
			logrus.Fatal("Force: version argument required")
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			logrus.Fatalf("Force: invalid version %q", args[1])
		}
		if err := m.Force(v); err != nil {
			logrus.Fatalf("Force failed: %v", err)
		}
		logrus.WithField("version", v).Info("Migrations: forced")

	default:
		usage()
		os.Exit(1)
	}
}

type migrateLogger struct {
	log *logrus.Logger
}

func (l *migrateLogger) Printf(format string, v ...interface{}) {
	l.log.Infof(format, v...)
}

func (l *migrateLogger) Verbose() bool {
	return l.log.IsLevelEnabled(logrus.DebugLevel)
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate [-config .env] <command> [args]

Commands:
  up           Apply all pending migrations
  down [N]     Rollback N migrations (default: 1)
  version      Print current migration version
  force <V>    Force set migration version (bypass dirty state)

Connection settings come from DB_HOST, DB_PORT, DB_USER, DB_PASSWORD and DB_NAME.`)
}
