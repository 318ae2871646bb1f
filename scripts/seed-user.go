package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/perchpost/perchpost/internal/metrics"
	"github.com/perchpost/perchpost/internal/migrations"
	"github.com/perchpost/perchpost/internal/repository"
	"github.com/perchpost/perchpost/internal/service"
)

type output struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		username    = flag.String("username", "admin", "Username for the seeded account")
		email       = flag.String("email", "admin@perchpost.local", "User email")
		password    = flag.String("password", "", "Password (required)")
		migrate     = flag.Bool("migrate", false, "Apply pending migrations first")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}
	if *password == "" {
		fmt.Fprintln(os.Stderr, "-password is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if *migrate {
		if err := migrations.Up(ctx, *databaseURL); err != nil {
			fmt.Fprintln(os.Stderr, "apply migrations:", err)
			os.Exit(1)
		}
	}

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	users := service.NewUserService(repo, metrics.NewNoop())

	user, err := users.SignUp(ctx, service.SignUpInput{
		Username: *username,
		Email:    *email,
		Password: *password,
	})
	if err != nil {
		if err == service.ErrDuplicateIdentity {
			fmt.Fprintln(os.Stderr, "user already exists:", *username)
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "create user:", err)
		os.Exit(1)
	}

	out := output{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	}

	switch strings.ToLower(*format) {
	case "plain":
		fmt.Println(out.UserID)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
	default:
		fmt.Fprintln(os.Stderr, "invalid format; use plain or json")
		os.Exit(1)
	}
}
