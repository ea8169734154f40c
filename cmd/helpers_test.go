package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/PolarWolf314/sealedconf/internal/hardware"
	"github.com/PolarWolf314/sealedconf/internal/keyring"
	"github.com/PolarWolf314/sealedconf/internal/seal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	testMachine  = hardware.Static{Serial: "PF2ABCDE", CPU: "BFEBFBFF000906EA"}
	otherMachine = hardware.Static{Serial: "C02XYZ", CPU: "AFEBFBFF000806EC"}
)

// syncBuffer is a bytes.Buffer safe for a command writing from another goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// resetFlags restores every flag of every command to its default.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// setContext gives every command ctx. Cobra only hands the root context to
// subcommands that have none, so contexts from earlier runs would stick.
func setContext(c *cobra.Command, ctx context.Context) {
	c.SetContext(ctx)
	for _, sub := range c.Commands() {
		setContext(sub, ctx)
	}
}

// setupTestEnvironment isolates a test from the caller's environment and
// hardware.
func setupTestEnvironment(t *testing.T, provider hardware.Provider) string {
	t.Helper()
	t.Setenv("SEALEDCONF_ENVIRONMENT", "")
	t.Setenv("ASPNETCORE_ENVIRONMENT", "")
	t.Setenv("NO_COLOR", "1")

	SetProvider(provider)
	t.Cleanup(func() {
		ResetProvider()
		resetFlags(RootCmd)
		RootCmd.SetOut(nil)
		RootCmd.SetErr(nil)
		RootCmd.SetIn(nil)
	})
	return t.TempDir()
}

// runCLI executes the real root command against dir and returns everything
// it printed.
func runCLI(t *testing.T, ctx context.Context, dir, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(RootCmd)
	setContext(RootCmd, ctx)

	out := &syncBuffer{}
	RootCmd.SetOut(out)
	RootCmd.SetErr(out)
	RootCmd.SetIn(strings.NewReader(stdin))
	RootCmd.SetArgs(append([]string{"--dir", dir}, args...))

	err := RootCmd.ExecuteContext(ctx)
	return out.String(), err
}

func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	return runCLI(t, context.Background(), dir, "", args...)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func encryptFor(t *testing.T, p hardware.Provider, value string) string {
	t.Helper()
	d, err := keyring.New(p)
	if err != nil {
		t.Fatalf("keyring.New failed: %v", err)
	}
	out, err := seal.New(d).Encrypt(context.Background(), value)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	return out
}
