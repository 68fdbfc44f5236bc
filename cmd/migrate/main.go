// Command migrate applies or inspects the database schema migrations.
//
// Usage: migrate [up|status|down]   (default: up)
//
// Exit codes: 0 = success, 1 = error, 2 = usage.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/heartmarshall/donorbase/internal/adapter/postgres"
	"github.com/heartmarshall/donorbase/internal/app"
	"github.com/heartmarshall/donorbase/internal/config"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	action := "up"
	if len(os.Args) > 1 {
		action = os.Args[1]
	}

	switch action {
	case "up":
		if err := postgres.Migrate(ctx, cfg.Database.DSN, logger); err != nil {
			logger.Error("migrate up failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("migrations applied")

	case "status":
		statuses, err := postgres.MigrationStatus(ctx, cfg.Database.DSN)
		if err != nil {
			logger.Error("migration status failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		for _, s := range statuses {
			state := "pending"
			if s.State == "applied" {
				state = "applied " + s.AppliedAt.Format(time.RFC3339)
			}
			fmt.Printf("%-6d %-40s %s\n", s.Source.Version, s.Source.Path, state)
		}

	case "down":
		res, err := postgres.Rollback(ctx, cfg.Database.DSN)
		if err != nil {
			logger.Error("rollback failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("rolled back", slog.Int64("version", res.Source.Version))

	default:
		fmt.Fprintf(os.Stderr, "usage: %s [up|status|down]\n", os.Args[0])
		os.Exit(2)
	}
}
