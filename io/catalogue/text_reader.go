/*package catalogue parses the flat, whitespace-delimited text tables written
by halo finders and merger tree codes into named records.*/
package catalogue

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
)

var (
	ErrColumns = errors.New("wrong number of columns")
	ErrNotInt  = errors.New("not an integer")
)

// TextConfig controls how text tables are tokenized.
type TextConfig struct {
	// MaxLineSize is the longest line, in bytes, that can be read.
	MaxLineSize int
	// Comment starts a line which is skipped.
	Comment byte
}

var DefaultConfig = TextConfig{
	MaxLineSize: 1 << 20,
	Comment:     '#',
}

// ParseError reports a malformed row of a table. Line is 1-indexed and Column
// is 0-indexed; Column is -1 for errors that apply to the whole line.
type ParseError struct {
	Table  string
	Line   int
	Column int
	Text   string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column < 0 {
		return fmt.Sprintf("%s, line %d: %s", e.Table, e.Line, e.Err)
	}
	return fmt.Sprintf("%s, line %d, column %d ('%s'): %s",
		e.Table, e.Line, e.Column, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// textReader reads the rows of a text table one at a time. Every row must
// have the same number of columns as the first one, and at least minColumns.
type textReader struct {
	sc         *bufio.Scanner
	config     TextConfig
	table      string
	minColumns int
	columns    int

	line   int
	fields [][]byte
}

func newTextReader(
	rd io.Reader, table string, minColumns int, config ...TextConfig,
) *textReader {
	t := &textReader{config: DefaultConfig, table: table, minColumns: minColumns}
	if len(config) > 0 {
		t.config = config[0]
	}

	t.sc = bufio.NewScanner(rd)
	t.sc.Buffer(make([]byte, 0, 4096), t.config.MaxLineSize)
	return t
}

// Next advances to the next non-empty, non-comment row. It returns false at
// the end of the table or on an error, which is then returned by Err.
func (t *textReader) Next() (bool, error) {
	for t.sc.Scan() {
		t.line++
		line := bytes.TrimSpace(t.sc.Bytes())
		if len(line) == 0 || line[0] == t.config.Comment {
			continue
		}

		t.fields = bytes.Fields(line)
		if t.columns == 0 {
			if len(t.fields) < t.minColumns {
				return false, t.lineError(fmt.Errorf(
					"%w: found %d, need at least %d",
					ErrColumns, len(t.fields), t.minColumns))
			}
			t.columns = len(t.fields)
		} else if len(t.fields) != t.columns {
			return false, t.lineError(fmt.Errorf(
				"%w: found %d, earlier rows have %d",
				ErrColumns, len(t.fields), t.columns))
		}
		return true, nil
	}

	if err := t.sc.Err(); err != nil {
		return false, fmt.Errorf("%s, line %d: %w", t.table, t.line+1, err)
	}
	return false, nil
}

func (t *textReader) lineError(err error) error {
	return &ParseError{Table: t.table, Line: t.line, Column: -1, Err: err}
}

func (t *textReader) fieldError(col int, err error) error {
	if numErr, ok := err.(*strconv.NumError); ok {
		err = numErr.Err
	}
	return &ParseError{
		Table: t.table, Line: t.line, Column: col,
		Text: string(t.fields[col]), Err: err,
	}
}

// Float64 parses column col of the current row.
func (t *textReader) Float64(col int) (float64, error) {
	x, err := strconv.ParseFloat(string(t.fields[col]), 64)
	if err != nil {
		return 0, t.fieldError(col, err)
	}
	return x, nil
}

// Int parses column col of the current row. Tables written by numpy store
// integer columns as floats, so integral float syntax such as "201.0" or
// "2.01e+02" is accepted.
func (t *textReader) Int(col int) (int, error) {
	text := string(t.fields[col])
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return int(i), nil
	}

	x, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, t.fieldError(col, err)
	}
	if x != math.Trunc(x) || math.Abs(x) > 1<<53 {
		return 0, t.fieldError(col, ErrNotInt)
	}
	return int(x), nil
}

// Float64s parses the columns [start, start + len(out)) of the current row
// into out.
func (t *textReader) Float64s(start int, out []float64) error {
	var err error
	for i := range out {
		if out[i], err = t.Float64(start + i); err != nil {
			return err
		}
	}
	return nil
}
