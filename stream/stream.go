/*
Package stream converts Betacode text line by line.

Lexicon and morphology sources keep one orthographic form per line, or short
phrases which the codec converts as a whole. A Reader streams such input
and converts every line independently, so one malformed line does not stop
the rest.
*/
package stream

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'betacode.stream'
func tracer() tracing.Trace {
	return tracing.Select("betacode.stream")
}

// Converter converts one Betacode string; *betacode.Codec implements it.
type Converter interface {
	Convert(word string) (string, error)
}

// maxLineLength limits a single input line.
const maxLineLength = 1 << 20

// Line is one converted input line.
type Line struct {
	Number int    // 1-based line number
	Source string // Betacode as read, without line terminator
	Text   string // Unicode, empty if Err != nil
	Err    error  // conversion failure, if any
}

// Reader streams converted lines from Betacode input.
type Reader struct {
	scanner *bufio.Scanner
	codec   Converter
	lineno  int
}

// NewReader creates a Reader converting input with codec.
func NewReader(codec Converter, input io.Reader) *Reader {
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 4096), maxLineLength)
	return &Reader{
		scanner: scanner,
		codec:   codec,
	}
}

// Next returns the next line.
// It returns io.EOF when exhausted. Conversion failures are reported in
// Line.Err, read errors as the error result.
func (r *Reader) Next() (Line, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return Line{}, err
		}
		return Line{}, io.EOF
	}
	r.lineno++
	source := strings.TrimRight(r.scanner.Text(), "\r")
	line := Line{Number: r.lineno, Source: source}
	line.Text, line.Err = r.codec.Convert(source)
	if line.Err != nil {
		tracer().Debugf("line %d: %v", r.lineno, line.Err)
	}
	return line, nil
}

// Copy converts all of input to output, one line per line. Lines which fail
// to convert are copied unchanged and passed to onError, if given. Copy
// returns the number of failed lines.
func Copy(codec Converter, input io.Reader, output io.Writer, onError func(Line)) (int, error) {
	r := NewReader(codec, input)
	w := bufio.NewWriter(output)
	failed := 0
	for {
		line, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return failed, err
		}
		text := line.Text
		if line.Err != nil {
			failed++
			text = line.Source
			if onError != nil {
				onError(line)
			}
		}
		if _, err := fmt.Fprintln(w, text); err != nil {
			return failed, err
		}
	}
	tracer().Infof("converted %d lines, %d failed", r.lineno, failed)
	return failed, w.Flush()
}
