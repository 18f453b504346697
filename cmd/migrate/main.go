package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/internal/config"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

const usage = `usage: migrate [-steps N] up|down|version

  up       apply all pending migrations (or N with -steps)
  down     roll back one migration (or N with -steps)
  version  print the current schema version`

func main() {
	steps := flag.Int("steps", 0, "number of migrations to apply or roll back")
	flag.Usage = func() { fmt.Fprintln(os.Stderr, usage) }
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		panic("cannot load config: " + err.Error())
	}
	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	m, err := migrate.New(cfg.DB.MigrationsPath, cfg.DB.DSN)
	if err != nil {
		appLogger.Fatal("cannot init migrations", err)
	}
	defer m.Close()

	switch flag.Arg(0) {
	case "up":
		if *steps > 0 {
			err = m.Steps(*steps)
		} else {
			err = m.Up()
		}
	case "down":
		n := *steps
		if n == 0 {
			n = 1
		}
		err = m.Steps(-n)
	case "version":
		version, dirty, verr := m.Version()
		if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
			appLogger.Fatal("cannot read schema version", verr)
		}
		appLogger.Info("Schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		return
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		appLogger.Fatal("migration failed", err, zap.String("command", flag.Arg(0)))
	}
	version, dirty, _ := m.Version()
	appLogger.Info("Migrations applied", zap.String("command", flag.Arg(0)), zap.Uint("version", version), zap.Bool("dirty", dirty))
}
