package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/goldsmith/backend/internal/infrastructure/config"
	"github.com/goldsmith/backend/internal/infrastructure/logger"
	"github.com/goldsmith/backend/internal/infrastructure/migration"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const defaultMigrationsPath = "migrations"

func main() {
	var (
		migrationsPath string
		logLevel       string
	)

	flag.StringVar(&migrationsPath, "path", "", "Path to migrations directory (default: ./migrations)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	if migrationsPath == "" {
		migrationsPath = resolveMigrationsPath()
	}
	absPath, err := filepath.Abs(migrationsPath)
	if err != nil {
		log.Fatal("resolve migrations path failed", zap.Error(err))
	}
	migrationsPath = absPath

	log.Info("migration cli started",
		zap.String("command", command),
		zap.String("migrations_path", migrationsPath),
	)

	// create and list only touch the filesystem; everything else needs
	// the database
	switch command {
	case "create", "list":
		runFileCommand(log, command, args, migrationsPath)
	case "up", "down", "step", "version", "force":
		runDatabaseCommand(log, command, args, migrationsPath)
	default:
		log.Error("unknown command", zap.String("command", command))
		printUsage()
		os.Exit(1)
	}
}

// runFileCommand handles the commands that work without a database
func runFileCommand(log *zap.Logger, command string, args []string, migrationsPath string) {
	switch command {
	case "create":
		if len(args) < 2 {
			log.Fatal("migration name required, usage: migrate create <name> [description]")
		}
		description := ""
		if len(args) > 2 {
			description = args[2]
		}
		mf, err := migration.CreateMigration(migrationsPath, args[1], description)
		if err != nil {
			log.Fatal("create migration failed", zap.Error(err))
		}
		log.Info("migration created",
			zap.String("version", mf.Version),
			zap.String("up_file", mf.UpPath),
			zap.String("down_file", mf.DownPath),
		)

	case "list":
		migrations, err := migration.ListMigrations(migrationsPath)
		if err != nil {
			log.Fatal("list migrations failed", zap.Error(err))
		}
		if len(migrations) == 0 {
			log.Info("no migrations found")
			return
		}
		log.Info("available migrations", zap.Int("count", len(migrations)))
		for _, m := range migrations {
			fmt.Println("  -", m)
		}
	}
}

// runDatabaseCommand connects to the ledger database and dispatches the
// schema command
func runDatabaseCommand(log *zap.Logger, command string, args []string, migrationsPath string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load configuration failed", zap.Error(err))
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("open database failed", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("ping database failed", zap.Error(err))
	}

	m, err := migration.New(db, migrationsPath, log)
	if err != nil {
		log.Fatal("create migrator failed", zap.Error(err))
	}
	defer m.Close()

	switch command {
	case "up":
		if err := m.Up(); err != nil {
			log.Fatal("apply migrations failed", zap.Error(err))
		}

	case "down":
		if err := m.Down(); err != nil {
			log.Fatal("roll back migrations failed", zap.Error(err))
		}

	case "step":
		n, ok := intArg(log, args, "step count required, usage: migrate step <n>")
		if !ok {
			return
		}
		if err := m.Steps(n); err != nil {
			log.Fatal("step migrations failed", zap.Error(err))
		}

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatal("read schema version failed", zap.Error(err))
		}
		if version == 0 {
			log.Info("no migrations applied")
			return
		}
		log.Info("current schema version",
			zap.Uint("version", version),
			zap.Bool("dirty", dirty),
		)

	case "force":
		version, ok := intArg(log, args, "version required, usage: migrate force <version>")
		if !ok {
			return
		}
		log.Warn("forcing schema version, the dirty flag will be cleared")
		if err := m.Force(version); err != nil {
			log.Fatal("force schema version failed", zap.Error(err))
		}
	}
}

// intArg parses the numeric argument following the command
func intArg(log *zap.Logger, args []string, usage string) (int, bool) {
	if len(args) < 2 {
		log.Fatal(usage)
		return 0, false
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		log.Fatal("argument is not a number", zap.String("value", args[1]))
		return 0, false
	}
	return n, true
}

// resolveMigrationsPath looks for the migrations directory next to the
// working directory first, then next to the executable
func resolveMigrationsPath() string {
	if _, err := os.Stat(defaultMigrationsPath); err == nil {
		return defaultMigrationsPath
	}
	execPath, err := os.Executable()
	if err == nil {
		candidate := filepath.Join(filepath.Dir(execPath), "..", "..", defaultMigrationsPath)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return defaultMigrationsPath
}

func printUsage() {
	fmt.Println(`Goldsmith Database Migration Tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    Apply all pending migrations
  down                  Roll back all migrations
  step <n>              Apply n migrations (positive=up, negative=down)
  version               Show current migration version
  force <version>       Force set migration version (use with caution)
  create <name> [desc]  Create a new migration file pair
  list                  List available migrations

Flags:
  -path string          Path to migrations directory (default: ./migrations)
  -log-level string     Log level: debug, info, warn, error (default: info)

Environment Variables:
  LEDGER_DATABASE_HOST, LEDGER_DATABASE_PORT, LEDGER_DATABASE_USER,
  LEDGER_DATABASE_PASSWORD, LEDGER_DATABASE_DBNAME, LEDGER_DATABASE_SSLMODE

Examples:
  # Apply all pending migrations
  migrate up

  # Roll back the last migration
  migrate step -1

  # Check current version
  migrate version`)
}
