// Package main is the command line client: one-shot commands and an
// interactive shell over the local secret list.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/atinyakov/SteamGuardKeeper/internal/app"
	"github.com/atinyakov/SteamGuardKeeper/internal/client"
	"github.com/atinyakov/SteamGuardKeeper/internal/config"
	"github.com/atinyakov/SteamGuardKeeper/internal/logger"
)

var (
	version   string
	buildDate string
)

// command holds the client-only flags.
type command struct {
	name   string
	secret string
	label  string
	index  string
	uri    string
	time   string
}

var errUsage = errors.New("usage error")

// run executes a one-shot command against svc.
func run(ctx context.Context, svc client.GuardService, c command, out io.Writer) error {
	switch c.name {
	case "time":
		fmt.Fprintln(out, svc.CurrentTime())
	case "code":
		if c.secret == "" {
			return fmt.Errorf("%w: -secret is required", errUsage)
		}
		var at *uint64
		if c.time != "" {
			t, err := strconv.ParseUint(c.time, 10, 64)
			if err != nil {
				return fmt.Errorf("%w: invalid -time: %v", errUsage, err)
			}
			at = &t
		}
		code, err := svc.GenerateCode(c.secret, at)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, code)
	case "list":
		client.PrintSecrets(out, svc.Secrets())
	case "codes":
		client.PrintCodes(out, svc.Codes())
	case "add":
		if c.label == "" || c.secret == "" {
			return fmt.Errorf("%w: -name and -secret are required", errUsage)
		}
		secrets, err := svc.AddSecret(ctx, c.label, c.secret)
		if err != nil {
			return err
		}
		client.PrintSecrets(out, secrets)
	case "import":
		if c.label == "" || c.uri == "" {
			return fmt.Errorf("%w: -name and -uri are required", errUsage)
		}
		secrets, err := svc.ImportURI(ctx, c.label, c.uri)
		if err != nil {
			return err
		}
		client.PrintSecrets(out, secrets)
	case "delete":
		index, err := strconv.ParseUint(c.index, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: invalid -index: %v", errUsage, err)
		}
		secrets, err := svc.DeleteSecret(ctx, index)
		if err != nil {
			return err
		}
		client.PrintSecrets(out, secrets)
	default:
		return fmt.Errorf("%w: unknown command: %s", errUsage, c.name)
	}
	return nil
}

// main parses command-line flags and dispatches to a one-shot command or the shell.
func main() {
	var (
		c       command
		showVer bool
	)

	flag.StringVar(&c.name, "cmd", "shell", "command: shell | code | list | codes | add | import | delete | time")
	flag.StringVar(&c.secret, "secret", "", "base64 shared secret for code and add")
	flag.StringVar(&c.label, "name", "", "account name for add and import")
	flag.StringVar(&c.index, "index", "", "position of the secret to delete")
	flag.StringVar(&c.uri, "uri", "", "otpauth:// uri for import")
	flag.StringVar(&c.time, "time", "", "unix seconds for code (default now)")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	_ = flag.Set("l", "warn")

	options := config.Parse()

	if showVer {
		fmt.Printf("Steam Guard Keeper Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	lg := logger.New()
	if err := lg.Init(options.LogLevel); err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Log.Sync() }()

	ctx := context.Background()
	application, err := app.New(ctx, options, lg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = application.Close() }()

	if c.name == "shell" {
		client.NewShell(application.Service, os.Stdin, os.Stdout).Run(ctx)
		return
	}

	if err := run(ctx, application.Service, c, os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			flag.Usage()
		}
		_ = application.Close()
		log.Fatal(err)
	}
}
