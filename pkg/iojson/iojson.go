// Package iojson reads and writes JSON payloads for CLI commands, from a
// file flag or piped stdin.
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// FileReader decodes a value of type T from --file, falling back to stdin
// when the flag is unset and stdin is a pipe.
type FileReader[T any] struct {
	path string
}

// Flag returns the --file flag to register on the command.
func (fr *FileReader[T]) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "path to JSON file (reads from stdin if not provided)",
		Destination: &fr.path,
	}
}

// Read decodes the input. Refuses to read from an interactive terminal.
func (fr *FileReader[T]) Read() (T, error) {
	var input T
	var reader io.Reader

	if fr.path != "" {
		f, err := os.Open(fr.path)
		if err != nil {
			return input, fmt.Errorf("open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		reader = f
	} else {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return input, fmt.Errorf("no input provided (stdin is a terminal); use -f or pipe JSON")
		}
		reader = os.Stdin
	}

	if err := json.NewDecoder(reader).Decode(&input); err != nil {
		return input, fmt.Errorf("decode JSON: %w", err)
	}
	return input, nil
}

// ReadFile decodes a value of type T straight from a file path.
func ReadFile[T any](path string) (T, error) {
	var v T
	f, err := os.Open(path)
	if err != nil {
		return v, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := json.NewDecoder(f).Decode(&v); err != nil {
		return v, fmt.Errorf("decode JSON: %w", err)
	}
	return v, nil
}

// Write encodes v as indented JSON to path, or to stdout when path is
// empty.
func Write(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
