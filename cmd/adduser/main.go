package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"server/internal/adapter/repo"
	"server/internal/domain"
	"server/internal/infra"
)

func main() {
	var (
		emailFlag    string
		nameFlag     string
		passwordFlag string
		roleFlag     string
	)

	flag.StringVar(&emailFlag, "email", "", "account email")
	flag.StringVar(&nameFlag, "name", "", "display name")
	flag.StringVar(&passwordFlag, "password", "", "initial password")
	flag.StringVar(&roleFlag, "role", "participant", "account role (participant or admin)")
	flag.Parse()

	email := strings.TrimSpace(strings.ToLower(emailFlag))
	name := strings.TrimSpace(nameFlag)

	if email == "" || name == "" || passwordFlag == "" {
		exitWithError(errors.New("-email, -name and -password are required"))
	}
	role := domain.UserRole(strings.TrimSpace(strings.ToLower(roleFlag)))
	switch role {
	case domain.UserRoleParticipant, domain.UserRoleAdmin:
	default:
		exitWithError(fmt.Errorf("unsupported role %q", roleFlag))
	}

	_ = godotenv.Load()
	cfg, err := infra.LoadConfig()
	if err != nil {
		exitWithError(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		exitWithError(err)
	}
	defer pool.Close()

	hash, err := infra.NewBcryptHasher().Hash(passwordFlag)
	if err != nil {
		exitWithError(err)
	}

	user := &domain.User{Email: email, Name: name, PasswordHash: hash, Role: role}
	if err := repo.NewUserRepository(pool).Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			exitWithError(fmt.Errorf("account %s already exists", email))
		}
		exitWithError(err)
	}
	fmt.Printf("created user %d (%s, %s)\n", user.ID, email, role)
}

func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "adduser: %v\n", err)
	os.Exit(1)
}
