package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"odoo-dashboard/internal/app"
)

// handleLogin runs an interactive sign-in. The username comes from the
// command line or a prompt; the password is always read without echo.
func handleLogin(ctx context.Context, reader *bufio.Reader, out io.Writer, svc app.DashboardService, password PasswordFunc, username string) {
	if svc.Session() != nil {
		fmt.Fprintf(out, "Already signed in as %s. Use /logout first.\n", svc.Session().HeaderName())
		return
	}
	if username == "" {
		fmt.Fprint(out, "Username: ")
		raw, _ := reader.ReadString('\n')
		username = strings.TrimSpace(raw)
	}
	pw, err := password("Password: ")
	if err != nil {
		fmt.Fprintf(out, "Error reading password: %v\n", err)
		return
	}

	fmt.Fprintln(out, "Signing in...")
	res, err := svc.Login(ctx, app.LoginRequest{Username: username, Password: pw})
	switch {
	case errors.Is(err, app.ErrLoginInProgress):
		fmt.Fprintln(out, "A sign-in is already in progress.")
		return
	case err != nil:
		fmt.Fprintf(out, "Error: %v\n", err)
		return
	}
	if !res.Authenticated() {
		fmt.Fprintln(out, res.Message)
		return
	}
	fmt.Fprintf(out, "Welcome, %s.\n", res.Session.HeaderName())
	printState(out, res.State)
}
