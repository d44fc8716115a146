package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"cert-study/internal/config"
	"cert-study/internal/database"
	"cert-study/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	flags := pflag.NewFlagSet("migrate", pflag.ExitOnError)
	flags.String("driver", "", "database driver (sqlite or postgres)")
	flags.String("db-path", "", "SQLite database file")
	flags.String("db-url", "", "Postgres connection URL")
	flags.Usage = func() { printUsage(flags) }
	_ = flags.Parse(os.Args[1:])

	v := viper.New()
	_ = v.BindPFlag("db.driver", flags.Lookup("driver"))
	_ = v.BindPFlag("db.path", flags.Lookup("db-path"))
	_ = v.BindPFlag("db.url", flags.Lookup("db-url"))

	cfg, err := config.LoadConfigWith(v)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	args := flags.Args()
	if len(args) < 1 {
		printUsage(flags)
		return
	}

	db, err := database.Open(cfg)
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	m, err := database.NewMigrator(db, cfg.DB.Driver)
	if err != nil {
		l.Fatal("Migration failed to initialize", zap.Error(err))
	}

	switch args[0] {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			l.Fatal("Up failed", zap.Error(err))
		}
		fmt.Println("Migrated up successfully")
	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			l.Fatal("Down failed", zap.Error(err))
		}
		fmt.Println("Migrated down successfully")
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Println("No migrations applied")
			return
		}
		if err != nil {
			l.Fatal("Version failed", zap.Error(err))
		}
		fmt.Printf("Version: %d, Dirty: %t\n", version, dirty)
	case "force":
		if len(args) < 2 {
			l.Fatal("force requires version argument")
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			l.Fatal("Invalid version", zap.String("version", args[1]), zap.Error(err))
		}
		if err := m.Force(version); err != nil {
			l.Fatal("Force failed", zap.Error(err))
		}
		fmt.Printf("Forced version to %d\n", version)
	default:
		printUsage(flags)
	}
}

func printUsage(flags *pflag.FlagSet) {
	fmt.Println("Usage: migrate [flags] <command>")
	fmt.Println("Commands: up, down, version, force <version>")
	fmt.Println("Flags:")
	flags.PrintDefaults()
}
