package workflows

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/sealedconf/internal/configs"
	"github.com/PolarWolf314/sealedconf/internal/hardware"
	"github.com/PolarWolf314/sealedconf/internal/jsonconf"
	"github.com/PolarWolf314/sealedconf/internal/keyring"
	"github.com/PolarWolf314/sealedconf/internal/seal"
)

// CheckStatus represents the result status of a health check.
type CheckStatus int

const (
	// CheckPass means the check passed.
	CheckPass CheckStatus = iota
	// CheckWarning means the check found a non-critical issue.
	CheckWarning
	// CheckError means the check found a critical issue.
	CheckError
)

// String returns a string representation of CheckStatus.
func (s CheckStatus) String() string {
	switch s {
	case CheckPass:
		return "pass"
	case CheckWarning:
		return "warning"
	case CheckError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for CheckStatus.
func (s CheckStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// CheckResult holds the result of a single health check.
type CheckResult struct {
	Name       string      `json:"name"`
	Status     CheckStatus `json:"status"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// DoctorResult holds the complete result of the doctor workflow.
type DoctorResult struct {
	Checks      []CheckResult `json:"checks"`
	Summary     DoctorSummary `json:"summary"`
	Suggestions []string      `json:"suggestions,omitempty"`

	// Fingerprint identifies this machine's key; empty when it cannot be derived.
	Fingerprint string `json:"fingerprint,omitempty"`
}

// DoctorSummary holds counts of checks by status.
type DoctorSummary struct {
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

// DoctorOptions configures the doctor workflow.
type DoctorOptions struct {
	// Dir holds .sealedconf.toml and the configuration files.
	Dir string

	Provider hardware.Provider
}

// Doctor checks that this machine can read its sealed configuration.
//
// The doctor workflow checks:
//   - .sealedconf.toml validity
//   - Board serial number and processor id availability
//   - Key derivation
//   - Whether the secrets file decrypts with this machine's key
//
// Identifier values are never reported, since they determine the key.
func Doctor(ctx context.Context, opts DoctorOptions) (*DoctorResult, error) {
	if opts.Provider == nil {
		return nil, fmt.Errorf("doctor: no hardware provider")
	}

	var results []CheckResult
	settings, check := checkSettings(opts.Dir)
	results = append(results, check)

	results = append(results,
		checkIdentifier(ctx, "Board serial number", opts.Provider.BoardSerial),
		checkIdentifier(ctx, "Processor id", opts.Provider.ProcessorID),
	)

	var fingerprint string
	var cipher *seal.Cipher
	d, err := keyring.New(opts.Provider, keyring.WithSalt(saltOrDefault(settings.Salt)))
	if err == nil {
		fingerprint, err = d.Fingerprint(ctx)
	}
	if err != nil {
		results = append(results, CheckResult{
			Name:       "Key derivation",
			Status:     CheckError,
			Message:    fmt.Sprintf("Cannot derive the machine key: %v", err),
			Suggestion: "Run with --debug to see which hardware query failed",
		})
	} else {
		cipher = seal.New(d)
		results = append(results, CheckResult{
			Name:    "Key derivation",
			Status:  CheckPass,
			Message: "Machine key derived (fingerprint " + fingerprint + ")",
		})
	}

	if path := settings.SecretsPath(opts.Dir); path != "" {
		results = append(results, checkSecretsFile(ctx, path, cipher))
	}

	var suggestions []string
	seen := make(map[string]bool)
	for _, result := range results {
		if result.Suggestion != "" && result.Status != CheckPass && !seen[result.Suggestion] {
			suggestions = append(suggestions, result.Suggestion)
			seen[result.Suggestion] = true
		}
	}

	return &DoctorResult{
		Checks:      results,
		Summary:     calculateDoctorSummary(results),
		Suggestions: suggestions,
		Fingerprint: fingerprint,
	}, nil
}

func saltOrDefault(salt string) string {
	if salt == "" {
		return keyring.DefaultSalt
	}
	return salt
}

// checkSettings loads the settings, falling back to the defaults on error
// so the remaining checks still run.
func checkSettings(dir string) (configs.Settings, CheckResult) {
	const name = "Settings"
	path := filepath.Join(dir, configs.SettingsFileName)

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return configs.DefaultSettings(), CheckResult{
			Name:       name,
			Status:     CheckWarning,
			Message:    configs.SettingsFileName + " not found, using defaults",
			Suggestion: "Run 'sealedconf init' to write the default settings",
		}
	}

	s, err := configs.LoadSettings(dir)
	if err != nil {
		return configs.DefaultSettings(), CheckResult{
			Name:       name,
			Status:     CheckError,
			Message:    fmt.Sprintf("Failed to load settings: %v", err),
			Suggestion: "Check " + configs.SettingsFileName + " for syntax errors",
		}
	}
	return s, CheckResult{Name: name, Status: CheckPass, Message: "Settings valid"}
}

func checkIdentifier(ctx context.Context, name string, query func(context.Context) (string, error)) CheckResult {
	if _, err := query(ctx); err != nil {
		return CheckResult{
			Name:       name,
			Status:     CheckError,
			Message:    fmt.Sprintf("%s unavailable: %v", name, err),
			Suggestion: "Run sealedconf with administrator rights, or check that the firmware reports hardware identifiers",
		}
	}
	return CheckResult{Name: name, Status: CheckPass, Message: name + " available"}
}

// checkSecretsFile counts how many string values of path decrypt with c.
func checkSecretsFile(ctx context.Context, path string, c *seal.Cipher) CheckResult {
	name := "Secrets file"
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return CheckResult{Name: name, Status: CheckWarning, Message: path + " not found"}
	}
	if err != nil {
		return CheckResult{Name: name, Status: CheckError, Message: fmt.Sprintf("Cannot open %s: %v", path, err)}
	}
	defer f.Close()

	doc, err := jsonconf.ParseDocument(f)
	if err != nil {
		return CheckResult{
			Name:       name,
			Status:     CheckError,
			Message:    fmt.Sprintf("%s is not valid: %v", path, err),
			Suggestion: "Fix the JSON syntax in " + path,
		}
	}
	if c == nil {
		return CheckResult{Name: name, Status: CheckWarning, Message: "Skipped decryption check for " + path + ": no machine key"}
	}

	total, failed := 0, 0
	count := func(ctx context.Context, value string) (string, error) {
		if value == "" {
			return value, nil
		}
		total++
		if _, err := c.Decrypt(ctx, value); err != nil {
			failed++
		}
		return value, nil
	}
	if _, err := jsonconf.Flatten(ctx, doc, count); err != nil {
		return CheckResult{Name: name, Status: CheckError, Message: fmt.Sprintf("%s: %v", path, err)}
	}

	switch {
	case total == 0 || failed == 0:
		return CheckResult{Name: name, Status: CheckPass, Message: fmt.Sprintf("All %d values in %s decrypt on this machine", total, path)}
	case failed == total:
		return CheckResult{
			Name:       name,
			Status:     CheckError,
			Message:    fmt.Sprintf("None of the %d values in %s decrypt on this machine", total, path),
			Suggestion: "The file was sealed on another machine or not sealed at all; reseal the plaintext values with 'sealedconf seal'",
		}
	default:
		return CheckResult{
			Name:       name,
			Status:     CheckWarning,
			Message:    fmt.Sprintf("%d of %d values in %s do not decrypt on this machine", failed, total, path),
			Suggestion: "Run 'sealedconf seal " + path + "' to seal the remaining values",
		}
	}
}

func calculateDoctorSummary(results []CheckResult) DoctorSummary {
	var summary DoctorSummary
	for _, r := range results {
		switch r.Status {
		case CheckPass:
			summary.Passed++
		case CheckWarning:
			summary.Warnings++
		case CheckError:
			summary.Errors++
		}
	}
	return summary
}
