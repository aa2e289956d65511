package tail

import (
	"bufio"
	"bytes"
	"io"
	"unicode/utf8"

	"github.com/radish-miyazaki/tailr/internal/take"
)

// WriteLines streams the tail of r to w in line mode. It resolves spec
// against totalLines, then re-reads r from its start, discarding lines
// before the resolved offset and writing every later line verbatim,
// terminator included. Lines are not addressable by byte offset, so line
// mode always pays a full sequential pass.
func WriteLines(w io.Writer, r io.Reader, spec take.Value, totalLines int64) error {
	offset, ok := spec.Offset(totalLines)
	if !ok {
		return nil
	}

	br := bufio.NewReader(r)
	var n int64
	for {
		rec, rerr := br.ReadBytes('\n')
		if len(rec) > 0 {
			if n >= offset {
				if _, werr := w.Write(rec); werr != nil {
					return werr
				}
			}
			n++
		}
		if rerr == io.EOF {
			return nil
		}
		if rerr != nil {
			return rerr
		}
	}
}

// WriteBytes streams the tail of rs to w in byte mode: a direct seek to
// the resolved offset followed by a single read to end-of-file. Invalid
// UTF-8 sequences are replaced with U+FFFD so display never fails.
func WriteBytes(w io.Writer, rs io.ReadSeeker, spec take.Value, totalBytes int64) error {
	offset, ok := spec.Offset(totalBytes)
	if !ok {
		return nil
	}

	if _, err := rs.Seek(offset, io.SeekStart); err != nil {
		return err
	}
	data, err := io.ReadAll(rs)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	return writeLossy(w, data)
}

// writeLossy writes data as UTF-8 with one U+FFFD per invalid byte. A
// byte offset can land inside a multi-byte rune, leaving stray
// continuation bytes at the front; each gets its own replacement rather
// than the whole run collapsing into one.
func writeLossy(w io.Writer, data []byte) error {
	if utf8.Valid(data) {
		_, err := w.Write(data)
		return err
	}

	var buf bytes.Buffer
	buf.Grow(len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune(utf8.RuneError)
		} else {
			buf.Write(data[:size])
		}
		data = data[size:]
	}
	_, err := w.Write(buf.Bytes())
	return err
}
