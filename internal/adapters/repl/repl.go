package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"odoo-dashboard/internal/app"
	"odoo-dashboard/internal/core"
)

// PasswordFunc reads a password without echoing it.
type PasswordFunc func(prompt string) (string, error)

var errExit = errors.New("exit")

// Run starts the interactive dashboard loop. Slash commands drive the same
// DashboardService the browser uses; a bare word selects the page of that name.
func Run(ctx context.Context, svc app.DashboardService, reader *bufio.Reader, out io.Writer, password PasswordFunc) {
	fmt.Fprintln(out, "Odoo Dashboard")
	fmt.Fprintln(out, "Sign in with /login, or use /help for commands.")
	fmt.Fprintln(out, strings.Repeat("-", 70))

	dispatchSlash := func(input string) error {
		tokens := strings.Fields(strings.TrimPrefix(input, "/"))
		if len(tokens) == 0 {
			return nil
		}
		cmd := strings.ToLower(tokens[0])
		args := tokens[1:]

		switch cmd {
		case "login", "l":
			username := ""
			if len(args) > 0 {
				username = args[0]
			}
			handleLogin(ctx, reader, out, svc, password, username)

		case "logout":
			svc.Logout(ctx)
			fmt.Fprintln(out, "Signed out.")

		case "state", "s":
			printState(out, svc.State())

		case "page", "p":
			if len(args) < 1 {
				fmt.Fprintln(out, "Usage: /page <Dashboard|Customers|Products|Sales|Inventory>")
				return nil
			}
			st, err := navigate(svc, args[0])
			if err != nil {
				return err
			}
			printState(out, st)

		case "home":
			if err := requireSession(svc); err != nil {
				return err
			}
			printState(out, svc.GoHome())

		case "widgets", "w":
			if err := requireSession(svc); err != nil {
				return err
			}
			printWidgets(out, svc.State().Widgets)

		case "add":
			// Usage: /add <type> [title...]
			if len(args) < 1 {
				fmt.Fprintln(out, "Usage: /add <sales|customers|tasks|inventory> [title]")
				return nil
			}
			res, err := svc.AddWidget(app.AddWidgetRequest{
				Kind:  core.WidgetKind(strings.ToLower(args[0])),
				Title: strings.Join(args[1:], " "),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Added widget %s (%s).\n", res.Widget.Title, res.Widget.ID)

		case "remove", "rm":
			if len(args) < 1 {
				fmt.Fprintln(out, "Usage: /remove <widget-id>")
				return nil
			}
			if _, err := svc.RemoveWidget(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(out, "Removed widget %s.\n", args[0])

		case "help", "h":
			printHelp(out)

		case "exit", "quit", "e", "q":
			return errExit

		default:
			fmt.Fprintf(out, "Unknown command: /%s  (type /help for all commands)\n", cmd)
		}
		return nil
	}

	for {
		fmt.Fprint(out, "\n> ")
		input, err := reader.ReadString('\n')
		input = strings.TrimSpace(input)
		if input == "" {
			if err != nil {
				return
			}
			continue
		}

		if strings.HasPrefix(input, "/") {
			if err := dispatchSlash(input); err != nil {
				if errors.Is(err, errExit) {
					fmt.Fprintln(out, "Goodbye!")
					return
				}
				fmt.Fprintf(out, "Error: %v\n", err)
			}
			continue
		}

		// No slash prefix: treat the input as a page name.
		st, navErr := navigate(svc, input)
		if navErr != nil {
			fmt.Fprintf(out, "Error: %v\n", navErr)
			continue
		}
		printState(out, st)
	}
}

// navigate selects a menu page by name, case-insensitively.
func navigate(svc app.DashboardService, name string) (core.State, error) {
	if err := requireSession(svc); err != nil {
		return core.State{}, err
	}
	page, err := core.ParsePage(name)
	if err != nil {
		return core.State{}, err
	}
	return svc.Navigate(page), nil
}

func requireSession(svc app.DashboardService) error {
	if svc.Session() == nil {
		return fmt.Errorf("%w: use /login first", app.ErrNotAuthenticated)
	}
	return nil
}
