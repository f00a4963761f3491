// Package cmd implements the CLI application to manage a company's
// equity ledger.
package cmd

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/opencap/captable"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&addCmd{}, "ledger")
	c.Register(&rmCmd{}, "ledger")
	c.Register(&recordsCmd{}, "ledger")

	c.Register(&foundersCmd{}, "company")
	c.Register(&sharesCmd{}, "company")
	c.Register(&esopCmd{}, "company")
	c.Register(&roundCmd{}, "company")

	c.Register(&summaryCmd{}, "reports")
	c.Register(&captableCmd{}, "reports")
	c.Register(&historyCmd{}, "reports")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global flags.

var (
	companyFlag = flag.String("company", "", "Company id the command applies to. Defaults to CAPTABLE_COMPANY.")
	dbFlag      = flag.String("db", "", "Path to the ledger database. Defaults to CAPTABLE_DB or ./captable.db.")
)

// getEnv reads an environment variable with a fallback.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

// companyID resolves the company the command applies to.
func companyID() string {
	if *companyFlag != "" {
		return *companyFlag
	}
	return getEnv("CAPTABLE_COMPANY", "default")
}

// openService loads the environment, opens the ledger store and wires
// the service's collaborators from it.
func openService() (*captable.Service, func(), error) {
	if err := godotenv.Load(); err != nil {
		// No .env file is fine, the OS environment and defaults apply.
		log.Printf("no .env file loaded: %v", err)
	}

	dbPath := *dbFlag
	if dbPath == "" {
		dbPath = getEnv("CAPTABLE_DB", "./captable.db")
	}
	store, err := captable.OpenSQLStore(dbPath)
	if err != nil {
		return nil, nil, err
	}

	cfg := captable.ServiceConfig{
		Store:  store,
		Logger: slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}

	if dir := getEnv("CAPTABLE_FILES", ""); dir != "" {
		storage, err := captable.NewDirStorage(dir)
		if err != nil {
			store.Close()
			return nil, nil, err
		}
		cfg.Storage = storage
	}

	if base := getEnv("CAPTABLE_EMPLOYEES_URL", ""); base != "" {
		cfg.Employees = &captable.HTTPEmployeeDirectory{
			BaseURL:  base,
			Currency: getEnv("CAPTABLE_CURRENCY", "USD"),
		}
	}

	return captable.NewService(cfg), func() { store.Close() }, nil
}
