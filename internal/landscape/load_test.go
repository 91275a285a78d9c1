package landscape

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/tonksim/internal/trajectory"
)

func TestReadWrittenLandscape(t *testing.T) {
	want, err := DoubleWell(60, 0.25, 15, 45, -2, 3)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := trajectory.WriteValues(&buf, want); err != nil {
		t.Fatal(err)
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d sites, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("site %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "v.txt")
	if err := os.WriteFile(path, []byte("# potential\n1.5\n-2\n0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	v, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(v) != 3 || v[0] != 1.5 || v[1] != -2 {
		t.Errorf("unexpected landscape %v", v)
	}
}

func TestReadInvalid(t *testing.T) {
	if _, err := Read(strings.NewReader("# nothing\n")); !errors.Is(err, ErrEmptyLandscape) {
		t.Errorf("expected ErrEmptyLandscape, got %v", err)
	}
	if _, err := Read(strings.NewReader("1\nNaN\n")); err == nil {
		t.Error("expected error for NaN site")
	}
	if _, err := Read(strings.NewReader("1\nabc\n")); err == nil {
		t.Error("expected parse error")
	}
}
