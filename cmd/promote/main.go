// Command promote grants the admin role to an existing operator account.
// It is the escape hatch when no bootstrap admin was configured.
//
// Usage:
//
//	promote --email=operator@example.com
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/heartmarshall/donorbase/internal/adapter/postgres"
	userrepo "github.com/heartmarshall/donorbase/internal/adapter/postgres/user"
	"github.com/heartmarshall/donorbase/internal/config"
	"github.com/heartmarshall/donorbase/internal/domain"
)

func main() {
	email := flag.String("email", "", "email of the operator to promote to admin")
	flag.Parse()

	if *email == "" {
		fmt.Fprintln(os.Stderr, "Usage: promote --email=operator@example.com")
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	users := userrepo.New(pool)

	u, err := users.GetByEmail(ctx, domain.NormalizeText(*email))
	if errors.Is(err, domain.ErrNotFound) {
		fmt.Printf("No operator found with email %q.\n", *email)
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("lookup operator: %v", err)
	}
	if u.Role == domain.UserRoleAdmin {
		fmt.Printf("Operator %q is already an admin.\n", u.Email)
		return
	}

	role := domain.UserRoleAdmin
	if _, err := users.Update(ctx, u.ID, domain.UserPatch{Role: &role}, time.Now().UTC()); err != nil {
		log.Fatalf("update role: %v", err)
	}

	fmt.Printf("Operator %q promoted to admin.\n", u.Email)
}
