package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/PolarWolf314/sealedconf/internal/configs"
	"github.com/PolarWolf314/sealedconf/internal/configsource"
	"github.com/PolarWolf314/sealedconf/internal/keyring"
	"github.com/PolarWolf314/sealedconf/internal/seal"
	"github.com/PolarWolf314/sealedconf/internal/ui"
	"github.com/PolarWolf314/sealedconf/internal/utils"
	"github.com/briandowns/spinner"
)

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// project is the resolved working directory and its settings.
type project struct {
	dir         string
	settings    configs.Settings
	environment string
}

// loadProject resolves the working directory from --dir, or the nearest
// directory holding .sealedconf.toml, or the current directory.
func loadProject() (*project, error) {
	dir := workDir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		found, err := utils.FindSettingsRoot(cwd, configs.SettingsFileName)
		if err != nil {
			return nil, err
		}
		dir = cwd
		if found != "" {
			dir = found
		}
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	Logger.Debugf("Using working directory %s", abs)

	s, err := configs.LoadSettings(abs)
	if err != nil {
		return nil, err
	}
	env := s.ResolveEnvironment(os.LookupEnv)
	Logger.Infof("Environment: %q", env)

	return &project{dir: abs, settings: s, environment: env}, nil
}

// deriver builds the key deriver for this machine, honouring a custom salt.
func (p *project) deriver() (*keyring.Deriver, error) {
	var opts []keyring.Option
	if p.settings.Salt != "" {
		Logger.Debugf("Using custom salt from %s", configs.SettingsFileName)
		opts = append(opts, keyring.WithSalt(p.settings.Salt))
	}
	return keyring.New(newProvider(), opts...)
}

func (p *project) cipher() (*seal.Cipher, *keyring.Deriver, error) {
	d, err := p.deriver()
	if err != nil {
		return nil, nil, err
	}
	return seal.New(d), d, nil
}

// pipeline returns the configured source chain with the secrets file
// decrypted by c.
func (p *project) pipeline(c *seal.Cipher) (*configsource.Builder, error) {
	b, err := p.settings.Pipeline(p.dir, p.environment, c.Decrypt)
	if err != nil {
		return nil, err
	}
	for _, s := range b.Sources() {
		Logger.Debugf("Source: %s", s.Describe())
	}
	return b, nil
}

// resolvePath makes a command-line file argument absolute. Relative paths
// are taken from the current directory, not --dir.
func resolvePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	return abs, nil
}

// startSpinner creates and starts a spinner with the given message when not
// in verbose or debug mode. The returned cleanup stops it and prints
// FinalMSG, with a trailing newline, to out.
func startSpinner(message string, out io.Writer) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	if quiet {
		s.Start()
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}
		if quiet {
			s.Stop()
		}
		if finalMsg != "" {
			fmt.Fprint(out, finalMsg)
		}
	}

	return s, cleanup
}
