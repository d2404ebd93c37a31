package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/mskard-business-solutions/gogreen-backend/internal/config"
	"github.com/mskard-business-solutions/gogreen-backend/internal/db"
	"github.com/mskard-business-solutions/gogreen-backend/internal/logger"
	"github.com/mskard-business-solutions/gogreen-backend/internal/migration"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using environment variables")
	}

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)

	database, err := db.Connect(cfg.GetDSN())
	if err != nil {
		fmt.Printf("Database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	runner := migration.NewRunner(database, nil)
	if err := runner.Initialize(); err != nil {
		fmt.Printf("Migration init failed: %v\n", err)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "up":
		err = runner.Up()
	case "down":
		err = runner.Down()
	case "status":
		var status *migration.Status
		status, err = runner.Status()
		if err == nil {
			out, _ := json.MarshalIndent(status, "", "  ")
			fmt.Println(string(out))
		}
	default:
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Printf("Migration command failed: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: migrate <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  up      apply all pending migrations")
	fmt.Println("  down    roll back the last applied migration")
	fmt.Println("  status  show applied and pending migrations")
}
