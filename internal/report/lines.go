package report

import (
	"bufio"
	"io"
	"strings"
)

// maxLineSize bounds the text kept from one line. The rest of a longer
// line is read and dropped.
const maxLineSize = 1024 * 1024

// LineReader hands out the lines of a report one at a time, normalised for
// prefix matching. It never goes backwards, so every consumer that is given
// the reader advances the same cursor.
type LineReader struct {
	reader *bufio.Reader
	line   int
	done   bool
	err    error
}

// NewLineReader wraps r.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{reader: bufio.NewReaderSize(r, 64*1024)}
}

// Next returns the next normalised line, or false at end of input.
func (l *LineReader) Next() (string, bool) {
	if l.done {
		return "", false
	}

	var buf []byte
	started := false
	for {
		chunk, more, err := l.reader.ReadLine()
		if err != nil {
			l.done = true
			if err != io.EOF {
				l.err = err
			}
			if !started {
				return "", false
			}
			break
		}
		started = true
		if room := maxLineSize - len(buf); room > 0 {
			if len(chunk) > room {
				chunk = chunk[:room]
			}
			buf = append(buf, chunk...)
		}
		if !more {
			break
		}
	}

	l.line++
	return normalize(string(buf)), true
}

// Line is the 1-based number of the line last returned by Next.
func (l *LineReader) Line() int {
	return l.line
}

// Err reports the first read error, if any. End of input is not an error.
func (l *LineReader) Err() error {
	return l.err
}

// normalize lower-cases and trims a line and collapses inner whitespace,
// since the simulator pads its labels into columns.
func normalize(line string) string {
	return strings.Join(strings.Fields(strings.ToLower(line)), " ")
}
