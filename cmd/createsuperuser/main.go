// Command createsuperuser creates a staff superuser with the admin role.
//
//	createsuperuser -email admin@example.com -first-name Ada -last-name Lovelace
//
// Email and names follow the same rules as the registration form.
// The password is read from -password or, when the flag is empty, from
// ACCOUNTS_SUPERUSER_PASSWORD.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/firstapp/accounts/internal/core/domain"
	"github.com/firstapp/accounts/internal/core/ports"
	"github.com/firstapp/accounts/internal/core/service"
	"github.com/firstapp/accounts/internal/infrastructure/credential"
	"github.com/firstapp/accounts/internal/infrastructure/db"
	"github.com/firstapp/accounts/internal/pkg/config"
	"github.com/firstapp/accounts/pkg/logger"
)

const passwordEnv = "ACCOUNTS_SUPERUSER_PASSWORD"

type options struct {
	email     string
	password  string
	firstName string
	lastName  string
}

func parseFlags(args []string, getenv func(string) string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("createsuperuser", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.email, "email", "", "superuser email (required)")
	fs.StringVar(&o.password, "password", "", "superuser password (or "+passwordEnv+")")
	fs.StringVar(&o.firstName, "first-name", "", "first name (required)")
	fs.StringVar(&o.lastName, "last-name", "", "last name (required)")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	o.email = strings.TrimSpace(o.email)
	if o.password == "" {
		o.password = getenv(passwordEnv)
	}
	if o.email == "" {
		return o, domain.ErrEmailRequired
	}
	if o.password == "" {
		return o, fmt.Errorf("a password is required: pass -password or set %s", passwordEnv)
	}
	return o, nil
}

// run sanitizes and checks the email and names with the registration form's
// rules, then creates the superuser.
func run(ctx context.Context, o options, repo ports.UserRepository, creds ports.CredentialStore, log zerolog.Logger, stdout io.Writer) error {
	email := service.SanitizeText(o.email)
	first := service.SanitizeText(o.firstName)
	last := service.SanitizeText(o.lastName)

	if res := service.NewFormValidator(nil).ValidateProfile(email, first, last); !res.Valid() {
		return &ports.InvalidInputError{Result: res}
	}

	users := service.NewUserManager(repo, creds, log)
	u, err := users.CreateSuperuser(ctx, email, o.password, service.UserFields{
		FirstName: first,
		LastName:  last,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return fmt.Errorf("%s: %w", o.email, err)
		}
		return err
	}
	fmt.Fprintf(stdout, "Superuser %s created successfully.\n", u)
	return nil
}

func main() {
	_ = godotenv.Load()
	ctx := context.Background()

	o, err := parseFlags(os.Args[1:], os.Getenv, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "createsuperuser:", err)
		os.Exit(2)
	}

	cfg, err := config.LoadBase(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "createsuperuser:", err)
		os.Exit(1)
	}
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  true,
		Output:  os.Stderr,
		Service: "createsuperuser",
	})

	store, closeStore, err := db.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("open user store")
	}
	defer func() { _ = closeStore(context.Background()) }()

	if err := run(ctx, o, store, credential.NewBcryptStore(cfg.BcryptCost), log, os.Stdout); err != nil {
		log.Error().Err(err).Msg("create superuser")
		_ = closeStore(context.Background())
		os.Exit(1)
	}
}
