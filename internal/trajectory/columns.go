package trajectory

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// ReadColumns reads the requested zero-based columns of a numeric table.
// The result holds one slice per requested column, in request order.
func ReadColumns(r io.Reader, cols ...int) ([][]float64, error) {
	if len(cols) == 0 {
		return nil, ErrNoColumns
	}
	out := make([][]float64, len(cols))

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if skipLine(text) {
			continue
		}
		fields := strings.FieldsFunc(text, func(c rune) bool {
			return c == ',' || unicode.IsSpace(c)
		})
		for j, c := range cols {
			if c < 0 || c >= len(fields) {
				return nil, &ParseError{Line: line, Err: fmt.Errorf("%w %d", ErrMissingColumn, c)}
			}
			v, err := strconv.ParseFloat(fields[c], 64)
			if err != nil {
				return nil, &ParseError{Line: line, Err: err}
			}
			out[j] = append(out[j], v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ReadColumnFile opens path with Open and reads the requested columns.
func ReadColumnFile(path string, cols ...int) ([][]float64, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return ReadColumns(rc, cols...)
}

// ReadFrameFile opens path with Open and reads every frame.
func ReadFrameFile(path string) ([]Frame, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return ReadFrames(rc)
}
