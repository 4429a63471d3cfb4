package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"odoo-dashboard/internal/adapters/cli"
	"odoo-dashboard/internal/adapters/repl"
	"odoo-dashboard/internal/app"
	"odoo-dashboard/internal/config"
	"odoo-dashboard/internal/logging"
	"odoo-dashboard/internal/odoo"

	"github.com/joho/godotenv"
	"golang.org/x/term"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("DASHBOARD_CONFIG"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// The terminal belongs to the user; only warnings and errors are logged.
	logger, err := logging.New("warn", "console")
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	client, err := odoo.NewClient(cfg.Odoo.URL, cfg.Odoo.Database, odoo.WithLogger(logger))
	if err != nil {
		log.Fatalf("odoo client: %v", err)
	}

	ctx := context.Background()

	if len(os.Args) > 1 {
		err := cli.Run(ctx, cli.Env{
			Config:   cfg,
			Backend:  client,
			Out:      os.Stdout,
			Password: envOrPrompt,
		}, os.Args[1:])
		if errors.Is(err, cli.ErrUsage) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		if err != nil {
			log.Fatalf("%s: %v", os.Args[1], err)
		}
		return
	}

	svc := app.NewAppService(client, app.Options{
		Seeds:  cfg.Dashboard.DefaultWidgets,
		Logger: logger,
	})
	repl.Run(ctx, svc, bufio.NewReader(os.Stdin), os.Stdout, readPassword)
	if svc.Session() != nil {
		svc.Logout(ctx)
	}
}

// envOrPrompt takes the password from ODOO_PASSWORD, then from the terminal.
func envOrPrompt(prompt string) (string, error) {
	if pw := os.Getenv("ODOO_PASSWORD"); pw != "" {
		return pw, nil
	}
	return readPassword(prompt)
}

// readPassword prompts on stderr and reads a line from the terminal without echo.
func readPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("stdin is not a terminal; set ODOO_PASSWORD")
	}
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
