package trajectory

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFrames = `# 1	nucleosome
0	
0.5	3,10
1.25	3,10,22

2.0	10
`

func TestReadFrames(t *testing.T) {
	frames, err := ReadFrames(strings.NewReader(sampleFrames))
	require.NoError(t, err)
	require.Len(t, frames, 4)

	assert.Equal(t, 0.0, frames[0].Time)
	assert.Empty(t, frames[0].Positions)
	assert.Equal(t, []int{3, 10}, frames[1].Positions)
	assert.Equal(t, 1.25, frames[2].Time)
	assert.Equal(t, []int{3, 10, 22}, frames[2].Positions)
	assert.Equal(t, []int{10}, frames[3].Positions)
}

func TestReaderNextEOF(t *testing.T) {
	r := NewReader(strings.NewReader("1\t4\n"))
	_, err := r.Next()
	require.NoError(t, err)
	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadFramesMalformed(t *testing.T) {
	_, err := ReadFrames(strings.NewReader("0\t1\nabc\t2\n"))
	require.Error(t, err)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 2, pe.Line)

	_, err = ReadFrames(strings.NewReader("0\t1,-4\n"))
	assert.Error(t, err)
}

func TestReadColumns(t *testing.T) {
	in := "# time\tcount\n0\t0\n1.5\t2\n3, 1\n4 5 6\n"
	cols, err := ReadColumns(strings.NewReader(in), 1, 0)
	require.NoError(t, err)
	require.Len(t, cols, 2)
	assert.Equal(t, []float64{0, 2, 1, 5}, cols[0])
	assert.Equal(t, []float64{0, 1.5, 3, 4}, cols[1])

	_, err = ReadColumns(strings.NewReader("1\t2\n3\n"), 1)
	assert.ErrorIs(t, err, ErrMissingColumn)

	_, err = ReadColumns(strings.NewReader("1\n"))
	assert.ErrorIs(t, err, ErrNoColumns)
}

func TestOpenFormats(t *testing.T) {
	dir := t.TempDir()
	payload := []byte("0\t1,2\n1\t2\n")

	plain := filepath.Join(dir, "traj.txt")
	require.NoError(t, os.WriteFile(plain, payload, 0644))

	var zbuf bytes.Buffer
	zw, err := zstd.NewWriter(&zbuf)
	require.NoError(t, err)
	_, err = zw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	zpath := filepath.Join(dir, "traj.txt.zst")
	require.NoError(t, os.WriteFile(zpath, zbuf.Bytes(), 0644))

	var gbuf bytes.Buffer
	gw := gzip.NewWriter(&gbuf)
	_, err = gw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	gpath := filepath.Join(dir, "traj.txt.gz")
	require.NoError(t, os.WriteFile(gpath, gbuf.Bytes(), 0644))

	for _, path := range []string{plain, zpath, gpath} {
		frames, err := ReadFrameFile(path)
		require.NoError(t, err, path)
		require.Len(t, frames, 2, path)
		assert.Equal(t, []int{1, 2}, frames[0].Positions, path)
	}
}

func TestOpenEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	frames, err := ReadFrameFile(path)
	require.NoError(t, err)
	assert.Empty(t, frames)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.txt"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestWriteIndexed(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteIndexed(&buf, []float64{0.5, 0.25}))
	assert.Equal(t, "0\t0.5\n1\t0.25\n", buf.String())

	buf.Reset()
	require.NoError(t, WritePairs(&buf, []float64{1, 2}, []float64{3, 4}))
	assert.Equal(t, "1\t3\n2\t4\n", buf.String())
	assert.Error(t, WritePairs(&buf, []float64{1}, nil))
}

func TestWriteValuesAndCounts(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteValues(&buf, []float64{1, -0.5}))
	assert.Equal(t, "1.000000000000000000e+00\n-5.000000000000000000e-01\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteCounts(&buf, []float64{0, 1.5}, []int{0, 2}))
	assert.Equal(t, "0\t0\n1.5\t2\n", buf.String())
	assert.Error(t, WriteCounts(&buf, []float64{0}, nil))
}

func TestWriteFrameReadsBack(t *testing.T) {
	var buf bytes.Buffer
	in := []Frame{
		{Time: 0},
		{Time: 0.125, Positions: []int{3, 10}},
		{Time: 12345.678901, Positions: []int{0, 147, 400}},
	}
	for _, f := range in {
		require.NoError(t, WriteFrame(&buf, f))
	}
	assert.Equal(t, "0\n0.125\t3,10\n12345.678901\t0,147,400\n", buf.String())

	out, err := ReadFrames(&buf)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Empty(t, out[0].Positions)
	for i := range in {
		assert.Equal(t, in[i].Time, out[i].Time)
	}
	assert.Equal(t, in[2].Positions, out[2].Positions)
}

func TestCreateRoundTrip(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"traj.txt", "traj.txt.gz", "traj.txt.zst"} {
		path := filepath.Join(dir, name)
		w, err := Create(path)
		require.NoError(t, err, name)
		require.NoError(t, WriteFrame(w, Frame{Time: 1.5, Positions: []int{2, 9}}), name)
		require.NoError(t, w.Close(), name)

		frames, err := ReadFrameFile(path)
		require.NoError(t, err, name)
		require.Len(t, frames, 1, name)
		assert.Equal(t, []int{2, 9}, frames[0].Positions, name)
	}
}
