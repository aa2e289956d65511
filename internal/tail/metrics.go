package tail

import (
	"bufio"
	"io"
)

// Measure performs one buffered sequential pass over r and returns the
// total line and byte counts. A line is a newline-terminated record; a
// final unterminated fragment still counts as one line. Only the current
// record is held in memory.
func Measure(r io.Reader) (lines, size int64, err error) {
	br := bufio.NewReader(r)
	for {
		rec, rerr := br.ReadBytes('\n')
		if len(rec) > 0 {
			lines++
			size += int64(len(rec))
		}
		if rerr == io.EOF {
			return lines, size, nil
		}
		if rerr != nil {
			return 0, 0, rerr
		}
	}
}
