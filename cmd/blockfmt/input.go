package main

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var errNoInput = errors.New("no input: pass markup as an argument or pipe it on stdin")

// readInput returns args[i], or standard input when it is missing or "-".
// An interactive terminal on stdin is refused rather than read until EOF.
func readInput(cmd *cobra.Command, args []string, i int) (string, error) {
	if i < len(args) && args[i] != "-" {
		return args[i], nil
	}
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "", errNoInput
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}
