// Command server runs the donor records REST service.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/heartmarshall/donorbase/internal/app"
)

func main() {
	// A missing .env is normal in containers; real env vars still apply.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Printf("server: %v", err)
		os.Exit(1)
	}
}
