package utils

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// IsTerminal returns true if stdin is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// ReadHidden prints prompt to w and reads one line from stdin without
// echoing it. It fails if stdin is not a terminal.
func ReadHidden(prompt string, w io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("cannot prompt for a value: stdin is not a terminal (hint: pass --stdin)")
	}

	fmt.Fprint(w, prompt)
	value, err := term.ReadPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("failed to read value: %w", err)
	}
	return string(value), nil
}
