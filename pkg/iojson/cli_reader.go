package iojson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// ErrNoInput is returned when neither a file nor piped input is available.
var ErrNoInput = errors.New("no input provided (stdin is a terminal); use -f flag or pipe JSON input")

// FileReader decodes a T from the file named by its -f flag, or from stdin
// when the flag is unset.
type FileReader[T any] struct {
	fileFlagValue string

	// Stdin overrides os.Stdin. A non-file reader is always treated as
	// piped input.
	Stdin io.Reader
}

// Flag returns the -f/--file flag bound to the reader.
func (fr *FileReader[T]) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "path to JSON file (reads from stdin if not provided)",
		Destination: &fr.fileFlagValue,
	}
}

// Provided reports whether input is available without blocking on a
// terminal.
func (fr *FileReader[T]) Provided() bool {
	if fr.fileFlagValue != "" {
		return true
	}
	return !isTerminal(fr.stdin())
}

func (fr *FileReader[T]) stdin() io.Reader {
	if fr.Stdin != nil {
		return fr.Stdin
	}
	return os.Stdin
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Read decodes the input.
func (fr *FileReader[T]) Read() (T, error) {
	var input T

	var reader io.Reader
	if fr.fileFlagValue != "" {
		f, err := os.Open(fr.fileFlagValue)
		if err != nil {
			return input, fmt.Errorf("open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		reader = f
	} else {
		reader = fr.stdin()
		if isTerminal(reader) {
			return input, ErrNoInput
		}
	}

	if err := json.NewDecoder(reader).Decode(&input); err != nil {
		return input, fmt.Errorf("decode JSON: %w", err)
	}

	return input, nil
}
