package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// SecretReader prompts for a value that must not be echoed.
type SecretReader func(label string) (string, error)

// newTerminalSecretReader reads from the controlling terminal without echo.
// When stdin is not a terminal it falls back to reading one line, so secrets
// can be piped in scripts.
func newTerminalSecretReader(in *os.File, out io.Writer) SecretReader {
	fd := int(in.Fd())
	lines := bufio.NewReader(in)
	return func(label string) (string, error) {
		fmt.Fprintf(out, "%s: ", label)
		if !term.IsTerminal(fd) {
			line, err := lines.ReadString('\n')
			if err != nil && (err != io.EOF || line == "") {
				return "", fmt.Errorf("read %s: %w", label, err)
			}
			return strings.TrimSpace(line), nil
		}

		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", label, err)
		}
		return strings.TrimSpace(string(raw)), nil
	}
}
