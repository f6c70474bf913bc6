package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/AlibekovAA/account-core/internal/account/domain"
	"github.com/AlibekovAA/account-core/internal/account/repository"
	"github.com/AlibekovAA/account-core/internal/account/service"
	"github.com/AlibekovAA/account-core/internal/common/bootstrap"
)

const usage = `usage: accounts <command> [flags]

commands:
  create        -username -email -password -confirm
  login         -username -password
  toggle-admin  -username | -id
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.NewAccountApp(ctx, "accounts")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}

	code := run(ctx, app, os.Args[1], os.Args[2:])

	if err := app.Close(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "shutdown: %v\n", err)
	}
	os.Exit(code)
}

func run(ctx context.Context, app *bootstrap.AccountApp, command string, args []string) int {
	ctx, cancel := context.WithTimeout(ctx, app.Config.RequestTimeout)
	defer cancel()

	var err error
	switch command {
	case "create":
		err = runCreate(ctx, app, args)
	case "login":
		err = runLogin(ctx, app, args)
	case "toggle-admin":
		err = runToggleAdmin(ctx, app, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return 2
	}

	if err == nil {
		return 0
	}
	if violations, ok := service.AsValidationErrors(err); ok {
		for field, rules := range violations.ByField() {
			fmt.Fprintf(os.Stderr, "%s: %v\n", field, rules)
		}
		return 1
	}
	app.Log.Errorf("%s failed: %v", command, err)
	return 1
}

func runCreate(ctx context.Context, app *bootstrap.AccountApp, args []string) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	var input domain.CreateInput
	fs.StringVar(&input.Username, "username", "", "account username")
	fs.StringVar(&input.Email, "email", "", "account email")
	fs.StringVar(&input.Password, "password", "", "plaintext password")
	fs.StringVar(&input.PasswordConfirmation, "confirm", "", "password confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}

	account, err := app.Accounts.Create(ctx, input)
	if err != nil {
		return err
	}
	fmt.Printf("created %s (%s)\n", account.Username, account.ID)
	return nil
}

func runLogin(ctx context.Context, app *bootstrap.AccountApp, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	username := fs.String("username", "", "account username")
	password := fs.String("password", "", "plaintext password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	account, ok, err := app.Authenticator.Authenticate(ctx, *username, *password)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("invalid username or password")
	}
	fmt.Printf("authenticated %s (%s) admin=%t\n", account.Username, account.ID, account.IsAdmin)
	return nil
}

func runToggleAdmin(ctx context.Context, app *bootstrap.AccountApp, args []string) error {
	fs := flag.NewFlagSet("toggle-admin", flag.ContinueOnError)
	username := fs.String("username", "", "account username")
	id := fs.String("id", "", "account id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		account domain.Account
		err     error
	)
	switch {
	case *id != "":
		account, err = app.Accounts.Get(ctx, domain.ID(*id))
	case *username != "":
		account, err = app.Accounts.FindByUsername(ctx, *username)
	default:
		return errors.New("toggle-admin needs -username or -id")
	}
	if errors.Is(err, repository.ErrAccountNotFound) {
		return fmt.Errorf("no such account")
	}
	if err != nil {
		return err
	}

	updated, err := app.Accounts.ToggleAdmin(ctx, account)
	if err != nil {
		return err
	}
	fmt.Printf("%s admin=%t\n", updated.Username, updated.IsAdmin)
	return nil
}
