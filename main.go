package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/bajrang214/looptalk-server/app/routes"
	"github.com/bajrang214/looptalk-server/config"

	"github.com/dgraph-io/badger/v4"
)

const cliVersion = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("looptalk-server version %s\n", cliVersion)
	case "serve":
		serve()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	helpText := `Usage: looptalk-server <command>
Commands:
  help                           Display this help message.
  version                        Show version information.
  serve                          Run the social feed API server.

Configuration is read from the environment:
  LOOPTALK_ADDR                  Listen address (default ":5000").
  LOOPTALK_DB_PATH               Badger database directory (default "data/badger").
  LOOPTALK_UPLOAD_DIR            Directory for uploaded images (default "uploads").
  LOOPTALK_ALLOWED_ORIGINS       Comma-separated CORS origins.
  JWT_SECRET_KEY                 Secret used to sign session tokens (required).
`
	fmt.Println(helpText)
}

// serve opens the Badger database and runs the HTTP API until the process
// is killed.
func serve() {
	cfg := config.FromEnv()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET_KEY must be set")
	}

	opts := badger.DefaultOptions(cfg.DBPath)
	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open Badger DB: %v", err)
	}
	defer db.Close()

	router, err := routes.SetupRoutes(db, cfg)
	if err != nil {
		log.Fatalf("Failed to setup routes: %v", err)
	}

	log.Printf("Starting looptalk server on %s", cfg.Addr)
	if err := routes.StartServer(cfg.Addr, router); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
