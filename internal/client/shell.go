// Package client implements the interactive shell of the command line client.
package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/atinyakov/SteamGuardKeeper/internal/models"
)

// GuardService defines the command operations used by the shell.
type GuardService interface {
	CurrentTime() uint64
	GenerateCode(sharedSecret string, at *uint64) (string, error)
	Secrets() []models.Secret
	AddSecret(ctx context.Context, name, sharedSecret string) ([]models.Secret, error)
	ImportURI(ctx context.Context, name, uri string) ([]models.Secret, error)
	DeleteSecret(ctx context.Context, index uint64) ([]models.Secret, error)
	Codes() []models.AccountCode
}

const helpText = "Available commands: help, list, codes, code <secret>, add, import <name> <uri>, delete <index>, time, exit"

// Shell reads commands line by line and writes results to out.
type Shell struct {
	svc     GuardService
	scanner *bufio.Scanner
	out     io.Writer
}

// NewShell returns a Shell bound to svc.
func NewShell(svc GuardService, in io.Reader, out io.Writer) *Shell {
	return &Shell{svc: svc, scanner: bufio.NewScanner(in), out: out}
}

// Run executes commands until exit or end of input.
func (s *Shell) Run(ctx context.Context) {
	for {
		fmt.Fprint(s.out, "guard> ")
		if !s.scanner.Scan() {
			fmt.Fprintln(s.out)
			return
		}
		args := strings.Fields(strings.TrimSpace(s.scanner.Text()))
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" {
			fmt.Fprintln(s.out, "Bye")
			return
		}
		s.Exec(ctx, args)
	}
}

// Exec runs a single command.
func (s *Shell) Exec(ctx context.Context, args []string) {
	switch args[0] {
	case "help":
		fmt.Fprintln(s.out, helpText)
	case "list":
		PrintSecrets(s.out, s.svc.Secrets())
	case "codes":
		PrintCodes(s.out, s.svc.Codes())
	case "code":
		if len(args) < 2 {
			fmt.Fprintln(s.out, "Usage: code <secret>")
			return
		}
		code, err := s.svc.GenerateCode(strings.Join(args[1:], " "), nil)
		if err != nil {
			fmt.Fprintln(s.out, "Error:", err)
			return
		}
		fmt.Fprintln(s.out, code)
	case "add":
		name, secret := PromptForSecret(s.scanner, s.out)
		secrets, err := s.svc.AddSecret(ctx, name, secret)
		if err != nil {
			fmt.Fprintln(s.out, "Error:", err)
			return
		}
		fmt.Fprintf(s.out, "Secret added (%d stored)\n", len(secrets))
	case "import":
		if len(args) < 3 {
			fmt.Fprintln(s.out, "Usage: import <name> <uri>")
			return
		}
		secrets, err := s.svc.ImportURI(ctx, args[1], args[2])
		if err != nil {
			fmt.Fprintln(s.out, "Error:", err)
			return
		}
		fmt.Fprintf(s.out, "Secret imported (%d stored)\n", len(secrets))
	case "delete":
		if len(args) < 2 {
			fmt.Fprintln(s.out, "Usage: delete <index>")
			return
		}
		index, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			fmt.Fprintln(s.out, "Invalid index")
			return
		}
		if index >= uint64(len(s.svc.Secrets())) {
			fmt.Fprintln(s.out, "Secret not found")
			return
		}
		if _, err := s.svc.DeleteSecret(ctx, index); err != nil {
			fmt.Fprintln(s.out, "Error:", err)
			return
		}
		fmt.Fprintln(s.out, "Secret deleted")
	case "time":
		fmt.Fprintln(s.out, s.svc.CurrentTime())
	default:
		fmt.Fprintf(s.out, "Unknown command: %s\n", args[0])
	}
}

// PrintSecrets writes the stored secrets with their indexes.
func PrintSecrets(w io.Writer, secrets []models.Secret) {
	if len(secrets) == 0 {
		fmt.Fprintln(w, "No secrets stored")
		return
	}
	for i, sec := range secrets {
		fmt.Fprintf(w, "%d\t%s\t%s\n", i, sec.Name, sec.SharedSecret)
	}
}

// PrintCodes writes the current code of every account.
func PrintCodes(w io.Writer, codes []models.AccountCode) {
	if len(codes) == 0 {
		fmt.Fprintln(w, "No secrets stored")
		return
	}
	for _, c := range codes {
		if c.Error != "" {
			fmt.Fprintf(w, "%d\t%s\terror: %s\n", c.Index, c.Name, c.Error)
			continue
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%ds left\n", c.Index, c.Name, c.Code, c.Remaining)
	}
}
