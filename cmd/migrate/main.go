package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"server/internal/db/migrations"
)

func main() {
	var statusFlag bool
	flag.BoolVar(&statusFlag, "status", false, "print migration status instead of applying")
	flag.Parse()

	_ = godotenv.Load()

	dsn := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dsn == "" {
		exitWithError(errors.New("DATABASE_URL is required"))
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		exitWithError(err)
	}
	defer db.Close()

	if statusFlag {
		if err := migrations.Status(db); err != nil {
			exitWithError(err)
		}
		return
	}

	if err := migrations.Up(db); err != nil {
		exitWithError(err)
	}
	fmt.Println("migrations applied")
}

func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
	os.Exit(1)
}
