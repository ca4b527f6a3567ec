package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"server/internal/adapter/repo"
	"server/internal/domain"
	"server/internal/infra"
)

type seedAccount struct {
	email       string
	name        string
	role        domain.UserRole
	affiliation string
	interest    string
}

var accounts = []seedAccount{
	{email: "admin@example.org", name: "Site Admin", role: domain.UserRoleAdmin},
	{email: "maria@example.org", name: "Maria Lopez", role: domain.UserRoleParticipant, affiliation: "Community Center", interest: "Education"},
	{email: "james@example.org", name: "James Okafor", role: domain.UserRoleParticipant, affiliation: "Food Bank", interest: "Volunteering"},
	{email: "claire@example.org", name: "Claire Dubois", role: domain.UserRoleParticipant, interest: "Fundraising"},
}

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		exitWithError(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		exitWithError(err)
	}
	defer pool.Close()

	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "changeme123"
	}
	hasher := infra.NewBcryptHasher()
	hash, err := hasher.Hash(password)
	if err != nil {
		exitWithError(err)
	}

	users := repo.NewUserRepository(pool)
	for _, acct := range accounts {
		user := &domain.User{
			Email:        acct.email,
			Name:         acct.name,
			PasswordHash: hash,
			Role:         acct.role,
			Affiliation:  acct.affiliation,
			Interest:     acct.interest,
		}
		err := users.Create(ctx, user)
		switch {
		case err == nil:
			fmt.Printf("created %s (%s)\n", acct.email, acct.role)
		case errors.Is(err, domain.ErrConflict):
			fmt.Printf("skipped %s (exists)\n", acct.email)
		default:
			exitWithError(err)
		}
	}
}

func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "seed: %v\n", err)
	os.Exit(1)
}
