package client

import (
	"bufio"
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atinyakov/SteamGuardKeeper/internal/clock"
	"github.com/atinyakov/SteamGuardKeeper/internal/models"
	"github.com/atinyakov/SteamGuardKeeper/internal/service"
	"github.com/atinyakov/SteamGuardKeeper/internal/storage"
)

func newService(t *testing.T, now uint64) *service.GuardService {
	t.Helper()
	fs, err := storage.NewFileStorage(filepath.Join(t.TempDir(), storage.FileName))
	if err != nil {
		t.Fatal(err)
	}
	clk := clock.Fixed(now)
	return service.NewGuardService(storage.New(context.Background(), fs, clk, nil), clk)
}

func runShell(t *testing.T, svc GuardService, input string) string {
	t.Helper()
	var out bytes.Buffer
	NewShell(svc, strings.NewReader(input), &out).Run(context.Background())
	return out.String()
}

func TestShell_AddCodesDelete(t *testing.T) {
	svc := newService(t, 0)

	out := runShell(t, svc, strings.Join([]string{
		"add",
		"main",
		`"aaaaaaaaaaaaaaaa"`,
		"codes",
		"list",
		"delete 3",
		"delete 0",
		"list",
		"exit",
	}, "\n")+"\n")

	for _, want := range []string{
		"Enter account name: ",
		"Secret added (1 stored)",
		"0\tmain\t7WBBJ\t30s left",
		"0\tmain\t\"aaaaaaaaaaaaaaaa\"",
		"Secret not found",
		"Secret deleted",
		"No secrets stored",
		"Bye",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if n := len(svc.Secrets()); n != 0 {
		t.Errorf("expected empty store, got %d", n)
	}
}

func TestShell_AddInvalid(t *testing.T) {
	svc := newService(t, 0)

	out := runShell(t, svc, "add\nbroken\nnot base64!\n")

	if !strings.Contains(out, "Error: invalid shared secret: failed to decode Base64") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if n := len(svc.Secrets()); n != 0 {
		t.Errorf("invalid secret stored: %d", n)
	}
}

func TestShell_Import(t *testing.T) {
	svc := newService(t, 0)

	out := runShell(t, svc, "import main otpauth://totp/Steam:me?secret=JBSWY3DPEHPK3PXP\nimport\n")

	if !strings.Contains(out, "Secret imported (1 stored)") || !strings.Contains(out, "Usage: import <name> <uri>") {
		t.Errorf("unexpected output:\n%s", out)
	}
	want := []models.Secret{{Name: "main", SharedSecret: "SGVsbG8h3q2+7w=="}}
	if got := svc.Secrets(); len(got) != 1 || got[0] != want[0] {
		t.Errorf("secrets = %+v; want %+v", got, want)
	}
}

func TestShell_MiscCommands(t *testing.T) {
	svc := newService(t, 1700000000)

	out := runShell(t, svc, "help\ntime\ncode aaaaaaaaaaaaaaaa\ncode %%%\ncode\ndelete x\nbogus\n\n")

	for _, want := range []string{
		helpText,
		"1700000000",
		"XFJKC",
		"Error: failed to decode Base64",
		"Usage: code <secret>",
		"Invalid index",
		"Unknown command: bogus",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPromptForSecret(t *testing.T) {
	var out bytes.Buffer
	scanner := bufio.NewScanner(strings.NewReader("alt\n  cnOgv/KdpLoP6Nbh0GMkXkPXALQ=  \n"))

	name, secret := PromptForSecret(scanner, &out)

	if name != "alt" {
		t.Errorf("name = %q; want alt", name)
	}
	if secret != "  cnOgv/KdpLoP6Nbh0GMkXkPXALQ=  " {
		t.Errorf("secret = %q", secret)
	}
	if !strings.Contains(out.String(), "Enter shared secret (base64): ") {
		t.Errorf("missing prompt in %q", out.String())
	}
}

func TestPrintCodes_Error(t *testing.T) {
	var out bytes.Buffer
	PrintCodes(&out, []models.AccountCode{{Index: 2, Name: "x", Error: "boom"}})
	if got := out.String(); got != "2\tx\terror: boom\n" {
		t.Errorf("output = %q", got)
	}
}

// countingService records DeleteSecret calls.
type countingService struct {
	*service.GuardService
	deletes int
}

func (c *countingService) DeleteSecret(ctx context.Context, index uint64) ([]models.Secret, error) {
	c.deletes++
	return c.GuardService.DeleteSecret(ctx, index)
}

func TestShell_DeleteBounds(t *testing.T) {
	svc := &countingService{GuardService: newService(t, 0)}
	if _, err := svc.AddSecret(context.Background(), "main", "aaaaaaaaaaaaaaaa"); err != nil {
		t.Fatal(err)
	}

	out := runShell(t, svc, "delete 1\n")
	if !strings.Contains(out, "Secret not found") || strings.Contains(out, "Secret deleted") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if svc.deletes != 0 || len(svc.Secrets()) != 1 {
		t.Errorf("deletes = %d, stored = %d; want 0 and 1", svc.deletes, len(svc.Secrets()))
	}

	out = runShell(t, svc, "delete 0\n")
	if !strings.Contains(out, "Secret deleted") || strings.Contains(out, "Secret not found") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if svc.deletes != 1 || len(svc.Secrets()) != 0 {
		t.Errorf("deletes = %d, stored = %d; want 1 and 0", svc.deletes, len(svc.Secrets()))
	}
}
