// Package take parses tail-style count specifications and resolves them
// against a file's totals.
//
// The sign carries meaning: a plain or explicitly negative number counts
// from the end of the file ("3" and "-3" both mean the last 3 items), an
// explicit plus counts from the start ("+3" means from the 3rd item on),
// and "+0" is a distinct sentinel meaning "everything" on non-empty input.
package take

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is a parsed count specification. The zero Value is Num(0),
// which resolves to "emit nothing".
type Value struct {
	plusZero bool
	n        int64
}

// PlusZero is the sentinel for a literal "+0" argument. It is not
// interchangeable with Num(0): on a non-empty file PlusZero means
// "start at the beginning", while Num(0) always means "emit nothing".
var PlusZero = Value{plusZero: true}

// Num returns a Value for a signed count. n > 0 starts at the n-th item
// counting from 1; n < 0 starts |n| items before the end; n == 0 emits
// nothing.
func Num(n int64) Value {
	return Value{n: n}
}

func (v Value) String() string {
	if v.plusZero {
		return "+0"
	}
	return strconv.FormatInt(v.n, 10)
}

// Parse parses a count argument. field names the option ("line" or
// "byte") and appears only in the error message.
func Parse(text, field string) (Value, error) {
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return Value{}, fmt.Errorf("illegal %s count -- %s", field, text)
	}

	switch {
	case strings.HasPrefix(text, "+"):
		if n == 0 {
			return PlusZero, nil
		}
		return Num(n), nil
	case strings.HasPrefix(text, "-"):
		return Num(n), nil
	default:
		// Unsigned input counts from the end, same as an explicit minus.
		return Num(-n), nil
	}
}

// Offset resolves the specification against a total item count (lines or
// bytes) and returns the zero-based index of the first item to emit.
// ok is false when nothing should be emitted.
func (v Value) Offset(total int64) (offset int64, ok bool) {
	if v.plusZero {
		if total == 0 {
			return 0, false
		}
		return 0, true
	}

	switch {
	case v.n == 0:
		return 0, false
	case v.n > 0:
		// Start position beyond the end: nothing to emit.
		if total < v.n {
			return 0, false
		}
		return v.n - 1, true
	default:
		// total + n instead of total - |n|: negating math.MinInt64
		// overflows, adding it does not.
		start := total + v.n
		if start < 0 {
			return 0, true
		}
		return start, true
	}
}
