// Package loader reads the source of a matched file.
package loader

import (
	"context"
	"fmt"
	"os"
)

// Loader returns the UTF-8 text of a file.
type Loader interface {
	Load(ctx context.Context, path string) (string, error)
}

// Error reports a file that could not be read. It unwraps to the underlying
// fs error, so errors.Is(err, fs.ErrNotExist) keeps working.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// File reads straight from the operating system. Every call hits the disk;
// incremental caching is left to the host build tool.
type File struct{}

// Load implements Loader.
func (File) Load(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", &Error{Path: path, Err: err}
	}
	return string(data), nil
}

// Func adapts a plain function to the Loader interface.
type Func func(ctx context.Context, path string) (string, error)

// Load implements Loader.
func (f Func) Load(ctx context.Context, path string) (string, error) {
	return f(ctx, path)
}
