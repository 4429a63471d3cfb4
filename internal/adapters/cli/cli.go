package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"odoo-dashboard/internal/config"
	"odoo-dashboard/internal/odoo"

	"gopkg.in/yaml.v3"
)

// Backend is the part of the Odoo client the check command drives.
type Backend interface {
	Login(ctx context.Context, username, password string) odoo.Result[*odoo.LoginInfo]
	GetUserInfo(ctx context.Context) odoo.Result[any]
	Logout(ctx context.Context) odoo.Result[struct{}]
}

// Env carries what the one-shot commands need.
type Env struct {
	Config   config.Config
	Backend  Backend
	Out      io.Writer
	Password func(prompt string) (string, error) // used when args carry no password
}

// ErrUsage is returned for unknown commands and bad arguments.
var ErrUsage = errors.New("usage: app [check [username] | config]")

// Run executes a one-shot CLI command.
// args is os.Args[1:]; the first element is the subcommand name.
func Run(ctx context.Context, env Env, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}
	switch args[0] {
	case "check", "c":
		username := "admin"
		if len(args) > 1 {
			username = args[1]
		}
		return check(ctx, env, username)

	case "config", "cfg":
		enc := yaml.NewEncoder(env.Out)
		enc.SetIndent(2)
		if err := enc.Encode(env.Config.Redacted()); err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
		return enc.Close()

	default:
		return fmt.Errorf("unknown command %q: %w", args[0], ErrUsage)
	}
}

// check signs in, prints the user record and signs out again. The backend
// session is destroyed even when fetching the user fails.
func check(ctx context.Context, env Env, username string) error {
	password, err := env.Password(fmt.Sprintf("Password for %s: ", username))
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	login, err := env.Backend.Login(ctx, username, password).Unwrap()
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	printLogin(env.Out, env.Config.Odoo, login)

	defer func() {
		if res := env.Backend.Logout(ctx); !res.OK() {
			fmt.Fprintf(env.Out, "Warning: logout failed: %s\n", res.Failure().Message)
			return
		}
		fmt.Fprintln(env.Out, "Logged out.")
	}()

	info, err := env.Backend.GetUserInfo(ctx).Unwrap()
	if err != nil {
		return fmt.Errorf("user info: %w", err)
	}
	enc := json.NewEncoder(env.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(info)
}

func printLogin(w io.Writer, cfg config.OdooConfig, l *odoo.LoginInfo) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 62))
	fmt.Fprintf(w, "  %-58s\n", "ODOO LOGIN")
	fmt.Fprintf(w, "  Server   : %s\n", cfg.URL)
	fmt.Fprintf(w, "  Database : %s\n", cfg.Database)
	fmt.Fprintln(w, strings.Repeat("=", 62))
	fmt.Fprintf(w, "  User ID  : %d\n", l.UserID)
	fmt.Fprintf(w, "  Name     : %s\n", l.Name)
	fmt.Fprintf(w, "  Username : %s\n", l.Username)
	fmt.Fprintf(w, "  Company  : %d\n", l.CompanyID)
	fmt.Fprintln(w, strings.Repeat("=", 62))
}
