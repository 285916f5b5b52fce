// Seeds an account into the configured storage.
// Usage: go run ./cmd/seeduser -email admin@wims.local -password admin123
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/config"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/dto"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/infra"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/model"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/repository"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	name := flag.String("name", "Admin Demo", "display name")
	email := flag.String("email", "admin@wims.local", "login email (admins)")
	password := flag.String("password", "admin123", "password")
	role := flag.String("role", string(model.RoleAdmin), "admin or salesman")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	st, rdb, err := infra.OpenStorage(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open storage")
	}
	if rdb != nil {
		defer rdb.Close()
	}

	ctx := context.Background()
	auth := service.NewAuthService(repository.NewUserRepository(st), repository.NewSessionRepository(st), cfg)
	if err := auth.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to load users")
	}

	resp, err := auth.Register(ctx, dto.RegisterRequest{
		Name:     *name,
		Email:    *email,
		Password: *password,
		Role:     model.Role(*role),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
	// Registration opens a session; a seeded account should not stay logged in.
	_ = auth.Logout(ctx, resp.User.ID)

	fmt.Printf("user %q (%s) created with id %s\n", resp.User.Name, resp.User.Role, resp.User.ID)
}
