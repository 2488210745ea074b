package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/avdeyev/bizdash/internal/client/api"
	"github.com/avdeyev/bizdash/internal/client/router"
)

func (a *App) getStatus() string {
	if u := a.cache.User(); u != nil {
		return fmt.Sprintf("(%s)", u.Email)
	}
	return ""
}

func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to bizdash (type 'help' for commands)")

	for {
		fmt.Fprintf(a.out, "bizdash %s%s> ", a.router.Path(), a.getStatus())
		// Read through the shared reader so prompts inside commands (login)
		// continue from the same stream.
		line, err := a.reader.ReadString('\n')
		if err != nil && line == "" {
			break
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			fmt.Fprintln(a.out, "Commands: login, logout, go <path>, contracts <company-id>, whoami, refresh, exit")
		case "login":
			a.Login(ctx)
		case "logout":
			a.auth.Logout(ctx)
		case "go":
			if len(args) == 0 {
				fmt.Fprintln(a.out, "Usage: go <path>")
				continue
			}
			a.router.Navigate(args[0])
		case "contracts":
			if len(args) == 0 {
				fmt.Fprintln(a.out, "Usage: contracts <company-id>")
				continue
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				fmt.Fprintln(a.out, "Usage: contracts <company-id>")
				continue
			}
			path := fmt.Sprintf("/sales/companies/%d/contracts", id)
			a.router.Register(router.Route{
				Path:   path,
				Access: router.AccessPrivate,
				Render: a.contractsPage(id),
			})
			a.router.Navigate(path)
		case "whoami":
			if u := a.cache.User(); u != nil {
				fmt.Fprintf(a.out, "%s <%s> (id %d)\n", u.Name, u.Email, u.ID)
			} else {
				fmt.Fprintln(a.out, "not signed in")
			}
		case "refresh":
			a.router.Refresh()
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		default:
			fmt.Fprintf(a.out, "Unknown command %q, type 'help'\n", cmd)
		}
	}
}

// Login prompts for credentials and runs the login flow. On success the
// router has already followed the public guard's redirect by the time this
// returns.
func (a *App) Login(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	if err := a.auth.Login(ctx, email, password); err != nil {
		switch {
		case errors.Is(err, api.ErrInvalidCredentials):
			fmt.Fprintln(a.out, "Invalid email or password.")
		default:
			var nerr *api.NetworkError
			if errors.As(err, &nerr) {
				fmt.Fprintf(a.out, "Could not reach the server: %s.\n", nerr.Error())
			} else {
				fmt.Fprintf(a.out, "Login failed: %v\n", err)
			}
		}
		return
	}
}
