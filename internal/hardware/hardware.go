package hardware

import (
	"context"
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/sealedconf/internal/errors"
)

// Provider reports the hardware identifiers of the current machine.
// Both methods return an error wrapping ErrHardwareUnavailable when the
// identifier is absent.
type Provider interface {
	BoardSerial(ctx context.Context) (string, error)
	ProcessorID(ctx context.Context) (string, error)
}

// Static is a Provider with fixed identifiers, reported verbatim. An empty
// or placeholder field is reported as absent.
type Static struct {
	Serial string
	CPU    string
}

func (s Static) BoardSerial(context.Context) (string, error) {
	return present("board serial", s.Serial)
}

func (s Static) ProcessorID(context.Context) (string, error) {
	return present("processor id", s.CPU)
}

// placeholders are values firmware vendors ship instead of a real identifier.
var placeholders = map[string]struct{}{
	"":                       {},
	"0":                      {},
	"none":                   {},
	"n/a":                    {},
	"default string":         {},
	"not applicable":         {},
	"not specified":          {},
	"system serial number":   {},
	"to be filled by o.e.m.": {},
	"0123456789":             {},
}

// Normalize trims an identifier and maps vendor placeholders to "".
func Normalize(value string) string {
	value = strings.TrimSpace(value)
	if _, ok := placeholders[strings.ToLower(value)]; ok {
		return ""
	}
	return value
}

// present returns value unchanged, padding included, so the derived key
// matches what the firmware reports. Normalize only decides absence.
func present(what, value string) (string, error) {
	if Normalize(value) == "" {
		return "", fmt.Errorf("%w: no %s reported", kerrors.ErrHardwareUnavailable, what)
	}
	return value, nil
}
