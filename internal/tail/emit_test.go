package tail_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radish-miyazaki/tailr/internal/tail"
	"github.com/radish-miyazaki/tailr/internal/take"
)

// failWriter fails every write, standing in for a closed output stream.
type failWriter struct {
	err error
}

func (w *failWriter) Write([]byte) (int, error) { return 0, w.err }

func TestWriteLines(t *testing.T) {
	const content = "one\ntwo\nthree\nfour\n"
	const totalLines = 4

	tests := []struct {
		name string
		spec take.Value
		want string
	}{
		{"last two", take.Num(-2), "three\nfour\n"},
		{"last more than exist", take.Num(-10), content},
		{"zero emits nothing", take.Num(0), ""},
		{"plus zero emits everything", take.PlusZero, content},
		{"from second line", take.Num(2), "two\nthree\nfour\n"},
		{"start past end", take.Num(5), ""},
		{"start at last line", take.Num(4), "four\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := tail.WriteLines(&buf, strings.NewReader(content), tt.spec, totalLines)
			require.NoError(t, err)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriteLines_UnterminatedFinalLine(t *testing.T) {
	var buf bytes.Buffer
	err := tail.WriteLines(&buf, strings.NewReader("one\ntwo"), take.Num(-1), 2)
	require.NoError(t, err)

	// The fragment is written verbatim, with no terminator invented.
	assert.Equal(t, "two", buf.String())
}

func TestWriteBytes(t *testing.T) {
	// 24 bytes.
	const content = "abcdefghijklmnopqrstuvwx"

	tests := []struct {
		name string
		spec take.Value
		want string
	}{
		{"plus ten emits from the tenth byte", take.Num(10), "jklmnopqrstuvwx"},
		{"last five", take.Num(-5), "tuvwx"},
		{"last more than exist", take.Num(-100), content},
		{"zero emits nothing", take.Num(0), ""},
		{"plus zero emits everything", take.PlusZero, content},
		{"start past end", take.Num(25), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			rs := strings.NewReader(content)
			err := tail.WriteBytes(&buf, rs, tt.spec, int64(len(content)))
			require.NoError(t, err)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriteLines_ReadError(t *testing.T) {
	errBoom := errors.New("boom")
	err := tail.WriteLines(io.Discard, iotest.ErrReader(errBoom), take.Num(-1), 1)
	assert.ErrorIs(t, err, errBoom)
}

func TestWriteLines_WriteError(t *testing.T) {
	errSink := errors.New("sink closed")
	err := tail.WriteLines(&failWriter{err: errSink}, strings.NewReader("a\nb\n"), take.Num(-2), 2)
	assert.ErrorIs(t, err, errSink)
}

func TestWriteBytes_WriteError(t *testing.T) {
	errSink := errors.New("sink closed")
	err := tail.WriteBytes(&failWriter{err: errSink}, strings.NewReader("hello"), take.Num(-5), 5)
	assert.ErrorIs(t, err, errSink)
}

func TestWriteBytes_LossyUTF8(t *testing.T) {
	// "héllo": the offset lands inside the two-byte é, leaving a dangling
	// continuation byte that must be replaced, not fail.
	content := "héllo"
	require.Equal(t, 6, len(content))

	var buf bytes.Buffer
	err := tail.WriteBytes(&buf, strings.NewReader(content), take.Num(-4), 6)
	require.NoError(t, err)
	assert.Equal(t, "�llo", buf.String())
}

func TestWriteBytes_LossyUTF8_PerByteReplacement(t *testing.T) {
	// "a€b": the euro sign is three bytes, and the offset lands after its
	// first byte. The two stray continuation bytes each become their own
	// U+FFFD, matching a lossy decode instead of collapsing the run.
	content := "a€b"
	require.Equal(t, 5, len(content))

	var buf bytes.Buffer
	err := tail.WriteBytes(&buf, strings.NewReader(content), take.Num(-3), 5)
	require.NoError(t, err)
	assert.Equal(t, "��b", buf.String())
}

func TestWriteBytes_ValidUTF8Untouched(t *testing.T) {
	// A literal U+FFFD in the input is valid UTF-8 and passes through.
	content := "x�y"

	var buf bytes.Buffer
	err := tail.WriteBytes(&buf, strings.NewReader(content), take.PlusZero, int64(len(content)))
	require.NoError(t, err)
	assert.Equal(t, content, buf.String())
}

func TestWriteBytes_EmptyInput(t *testing.T) {
	var buf bytes.Buffer
	err := tail.WriteBytes(&buf, strings.NewReader(""), take.PlusZero, 0)
	require.NoError(t, err)
	assert.Zero(t, buf.Len())
}
