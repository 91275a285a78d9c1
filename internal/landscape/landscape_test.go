package landscape

import (
	"errors"
	"math"
	"testing"
)

func TestBuildFlat(t *testing.T) {
	v, err := Build(5, 0.5, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i, x := range v {
		if x != 0.5 {
			t.Errorf("site %d: expected 0.5, got %f", i, x)
		}
	}
}

func TestDoubleWell(t *testing.T) {
	v, err := DoubleWell(100, 1.0, 30, 70, -2.0, 4.0)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(v[30]-(-1.0)) > 1e-12 {
		t.Errorf("expected flat+depth at centre, got %f", v[30])
	}
	if math.Abs(v[70]-(-1.0)) > 1e-12 {
		t.Errorf("expected flat+depth at centre, got %f", v[70])
	}
	if v[50] != 1.0 {
		t.Errorf("expected untouched site between wells, got %f", v[50])
	}

	want := 1.0 - 2.0*math.Exp(-4.0/16.0)
	if math.Abs(v[32]-want) > 1e-12 {
		t.Errorf("expected %f two sites from centre, got %f", want, v[32])
	}

	// cutoff is [pos-3σ, pos+3σ)
	if v[17] != 1.0 {
		t.Errorf("expected no contribution below cutoff, got %f", v[17])
	}
	if v[18] == 1.0 {
		t.Error("expected lower cutoff to be inclusive")
	}
	if v[42] != 1.0 {
		t.Errorf("expected exclusive upper cutoff, got %f", v[42])
	}
}

func TestBuildClipsToLattice(t *testing.T) {
	v, err := Build(10, 0, []Well{{Pos: 9, Depth: 1, Sigma: 2}})
	if err != nil {
		t.Fatal(err)
	}
	if v[9] != 0 {
		t.Errorf("last site is never touched, got %f", v[9])
	}
	if v[8] == 0 {
		t.Error("expected contribution next to the centre")
	}
}

func TestBuildInvalid(t *testing.T) {
	if _, err := Build(0, 0, nil); err == nil {
		t.Error("expected error for zero length")
	}
	if _, err := Build(10, 0, []Well{{Pos: 3, Depth: 1, Sigma: 0}}); !errors.Is(err, ErrInvalidWell) {
		t.Errorf("expected ErrInvalidWell, got %v", err)
	}
}

func TestParseWell(t *testing.T) {
	w, err := ParseWell("40, -1.5, 3")
	if err != nil {
		t.Fatal(err)
	}
	if w.Pos != 40 || w.Depth != -1.5 || w.Sigma != 3 {
		t.Errorf("unexpected well %v", w)
	}

	for _, bad := range []string{"1,2", "a,1,2", "1,b,2", "1,2,c"} {
		if _, err := ParseWell(bad); !errors.Is(err, ErrInvalidWell) {
			t.Errorf("%q: expected ErrInvalidWell, got %v", bad, err)
		}
	}
}
