package trajectory

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const maxLine = 64 << 20

// Frame is the lattice occupancy recorded at one time.
type Frame struct {
	Time      float64
	Positions []int
}

// Reader iterates over the frames of a trajectory.
type Reader struct {
	sc   *bufio.Scanner
	line int
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)
	return &Reader{sc: sc}
}

// Next returns the next frame, or io.EOF when the input is exhausted.
func (r *Reader) Next() (Frame, error) {
	for r.sc.Scan() {
		r.line++
		text := strings.TrimSpace(r.sc.Text())
		if skipLine(text) {
			continue
		}
		f, err := parseFrame(text)
		if err != nil {
			return Frame{}, &ParseError{Line: r.line, Err: err}
		}
		return f, nil
	}
	if err := r.sc.Err(); err != nil {
		return Frame{}, err
	}
	return Frame{}, io.EOF
}

// ReadFrames reads every frame from r.
func ReadFrames(r io.Reader) ([]Frame, error) {
	tr := NewReader(r)
	var frames []Frame
	for {
		f, err := tr.Next()
		if err == io.EOF {
			return frames, nil
		}
		if err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}
}

func skipLine(text string) bool {
	return text == "" || strings.HasPrefix(text, "#")
}

func parseFrame(text string) (Frame, error) {
	fields := strings.Split(text, "\t")
	t, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
	if err != nil {
		return Frame{}, fmt.Errorf("time: %w", err)
	}
	f := Frame{Time: t}
	if len(fields) < 2 {
		return f, nil
	}
	for _, tok := range strings.Split(fields[1], ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		p, err := strconv.Atoi(tok)
		if err != nil {
			return Frame{}, fmt.Errorf("position: %w", err)
		}
		if p < 0 {
			return Frame{}, fmt.Errorf("position %d is negative", p)
		}
		f.Positions = append(f.Positions, p)
	}
	return f, nil
}
