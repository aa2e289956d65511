// Package tail extracts and streams the trailing portion of files.
//
// Each file is processed in two passes with independent handles: a
// metrics pass counting total lines and bytes, then an emission pass
// that either re-reads sequentially (line mode) or seeks directly
// (byte mode). Files are handled strictly one after another.
package tail

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/radish-miyazaki/tailr/internal/take"
)

// Options configures a run over an ordered list of files.
type Options struct {
	Files []string

	// Lines is the line-count specification. Ignored when Bytes is set:
	// a byte spec takes precedence for the whole run.
	Lines take.Value

	// Bytes, when non-nil, switches every file to byte mode.
	Bytes *take.Value

	// Quiet suppresses the per-file headers shown for multiple files.
	Quiet bool

	// Header formats the separator line printed before a file's output.
	// When nil, a plain "==> name <==" is used.
	Header func(name string) string

	Out    io.Writer
	ErrOut io.Writer
}

// Run processes each file in input order. A file that cannot be opened
// gets a diagnostic on ErrOut and the batch continues; an I/O failure on
// an already-opened file is fatal and aborts the run.
func Run(opts Options) error {
	header := opts.Header
	if header == nil {
		header = func(name string) string { return fmt.Sprintf("==> %s <==", name) }
	}

	multi := len(opts.Files) > 1
	for i, name := range opts.Files {
		f, err := os.Open(name)
		if err != nil {
			fmt.Fprintf(opts.ErrOut, "%s: %s\n", name, osError(err))
			continue
		}

		if multi && !opts.Quiet {
			if i > 0 {
				fmt.Fprintln(opts.Out)
			}
			fmt.Fprintln(opts.Out, header(name))
		}

		totalLines, totalBytes, err := measure(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		slog.Debug("measured file",
			"file", name,
			"lines", totalLines,
			"bytes", totalBytes,
		)

		if opts.Bytes != nil {
			err = emitBytes(opts.Out, name, *opts.Bytes, totalBytes)
		} else {
			err = emitLines(opts.Out, name, opts.Lines, totalLines)
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
	}

	return nil
}

// measure runs the metrics pass and releases the handle, whatever the
// outcome.
func measure(f *os.File) (lines, size int64, err error) {
	defer f.Close()
	return Measure(f)
}

// emitLines reopens name for the emission pass. The resolver runs first
// so a "nothing to emit" spec never touches the file again.
func emitLines(w io.Writer, name string, spec take.Value, totalLines int64) error {
	if _, ok := spec.Offset(totalLines); !ok {
		return nil
	}

	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteLines(w, f, spec, totalLines)
}

func emitBytes(w io.Writer, name string, spec take.Value, totalBytes int64) error {
	if _, ok := spec.Offset(totalBytes); !ok {
		return nil
	}

	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteBytes(w, f, spec, totalBytes)
}

// osError strips the "open <path>:" prefix Go puts on *fs.PathError so
// diagnostics read "<path>: no such file or directory".
func osError(err error) string {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err.Error()
	}
	return err.Error()
}
