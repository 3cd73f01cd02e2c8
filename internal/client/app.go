package client

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/MKhiriev/go-accounts/internal/adapter"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/tui"
)

// PasswordPrompt asks the user for a password labelled label.
type PasswordPrompt func(label string) (string, error)

// App runs accountctl subcommands against the accounts server.
type App struct {
	adapter   adapter.AccountsAdapter
	prompt    PasswordPrompt
	clipboard func(string) error
	out       io.Writer
	logger    *logger.Logger

	commands map[string]command
}

type command struct {
	usage string
	run   func(ctx context.Context, args []string) error
}

// Option customises an [App].
type Option func(*App)

// WithOutput sets where command results are printed. Defaults to stdout.
func WithOutput(out io.Writer) Option {
	return func(a *App) { a.out = out }
}

// WithPasswordPrompt replaces the interactive masked prompt.
func WithPasswordPrompt(prompt PasswordPrompt) Option {
	return func(a *App) { a.prompt = prompt }
}

// WithClipboard replaces the system clipboard writer used by login -copy.
func WithClipboard(write func(string) error) Option {
	return func(a *App) { a.clipboard = write }
}

// NewApp builds the client over accountsAdapter.
func NewApp(accountsAdapter adapter.AccountsAdapter, logger *logger.Logger, opts ...Option) *App {
	a := &App{
		adapter: accountsAdapter,
		prompt: func(label string) (string, error) {
			return tui.PromptPassword(label, os.Stdin, os.Stderr)
		},
		clipboard: clipboard.WriteAll,
		out:       os.Stdout,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.commands = map[string]command{
		"register": {usage: "create an account", run: a.register},
		"login":    {usage: "obtain a bearer token", run: a.login},
		"profile":  {usage: "show the account of the current token", run: a.profile},
		"list":     {usage: "list accounts (admin only)", run: a.list},
		"update":   {usage: "change an account", run: a.update},
		"delete":   {usage: "remove an account", run: a.delete},
		"health":   {usage: "show server status and version", run: a.health},
	}

	return a
}

// Run executes the subcommand named by args[0] with the remaining arguments.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printUsage()
		return ErrNoCommand
	}

	name := args[0]
	if name == "help" || name == "-h" || name == "--help" {
		a.printUsage()
		return nil
	}

	cmd, ok := a.commands[name]
	if !ok {
		a.printUsage()
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	a.logger.Debug().Str("command", name).Msg("running command")

	err := cmd.run(ctx, args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	return nil
}

func (a *App) printUsage() {
	names := make([]string, 0, len(a.commands))
	for name := range a.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("usage: accountctl <command> [flags]\n\ncommands:\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %-10s %s\n", name, a.commands[name].usage)
	}
	fmt.Fprint(a.out, b.String())
}

// newFlagSet returns a flag set for the subcommand name with the -token flag
// every authenticated command accepts.
func (a *App) newFlagSet(name string) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	token := fs.String("token", "", "bearer token (overrides ACCOUNTCTL_TOKEN)")
	return fs, token
}

func (a *App) applyToken(token string) {
	if token != "" {
		a.adapter.SetToken(token)
	}
}

// passwordOrPrompt returns password, or asks for one when it is empty.
func (a *App) passwordOrPrompt(password, label string) (string, error) {
	if password != "" {
		return password, nil
	}
	return a.prompt(label)
}
