package utils

import (
	"fmt"
	"io"
	"strings"
)

// ReadValue reads all of r and strips one trailing line ending, so
// `echo secret | sealedconf encrypt --stdin` seals "secret".
func ReadValue(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read from stdin: %w", err)
	}

	s := string(data)
	s = strings.TrimSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\r")
	return s, nil
}
