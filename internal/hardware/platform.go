package hardware

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	kerrors "github.com/PolarWolf314/sealedconf/internal/errors"
)

// queryTimeout bounds every external command.
const queryTimeout = 5 * time.Second

// CommandExecutor runs an external command and returns its standard output.
type CommandExecutor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
}

type execExecutor struct{}

func (execExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return "", fmt.Errorf("running %s: %w", name, err)
	}
	return string(out), nil
}

// Platform queries the operating system for identifiers.
type Platform struct {
	goos     string
	executor CommandExecutor
	readFile func(name string) ([]byte, error)
}

// NewPlatform returns a Platform for the running operating system.
func NewPlatform() *Platform {
	return &Platform{
		goos:     runtime.GOOS,
		executor: execExecutor{},
		readFile: os.ReadFile,
	}
}

// WithExecutor replaces the command executor.
func (p *Platform) WithExecutor(e CommandExecutor) *Platform {
	p.executor = e
	return p
}

// WithReadFile replaces the function used to read sysfs and procfs entries.
func (p *Platform) WithReadFile(fn func(name string) ([]byte, error)) *Platform {
	p.readFile = fn
	return p
}

// WithOS overrides the detected operating system.
func (p *Platform) WithOS(goos string) *Platform {
	p.goos = goos
	return p
}

func (p *Platform) BoardSerial(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var serial string
	switch p.goos {
	case "linux":
		serial = p.linuxBoardSerial(ctx)
	case "windows":
		serial = p.windowsQuery(ctx, "Win32_BaseBoard", "SerialNumber")
	case "darwin":
		serial = p.darwinBoardSerial(ctx)
	default:
		return "", unsupported(p.goos)
	}
	return present("board serial", serial)
}

func (p *Platform) ProcessorID(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var id string
	switch p.goos {
	case "linux":
		id = p.linuxProcessorID()
	case "windows":
		id = p.windowsQuery(ctx, "Win32_Processor", "ProcessorId")
	case "darwin":
		id = p.darwinProcessorID(ctx)
	default:
		return "", unsupported(p.goos)
	}
	return present("processor id", id)
}

func unsupported(goos string) error {
	return fmt.Errorf("%w: unsupported platform %q", kerrors.ErrHardwareUnavailable, goos)
}

// run executes a command and returns its trimmed output, or "" on failure.
func (p *Platform) run(ctx context.Context, name string, args ...string) string {
	out, err := p.executor.Execute(ctx, name, args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// runLine executes a command and strips only the line ending the shell
// appends, keeping padding that belongs to the value.
func (p *Platform) runLine(ctx context.Context, name string, args ...string) string {
	out, err := p.executor.Execute(ctx, name, args...)
	if err != nil {
		return ""
	}
	return strings.TrimRight(out, "\r\n")
}

func (p *Platform) read(name string) string {
	data, err := p.readFile(name)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
