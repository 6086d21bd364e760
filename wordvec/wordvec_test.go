// Copyright (c) 2026, The Naturalistic Data Analysis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wordvec

import (
	"errors"
	"strings"
	"testing"

	"github.com/goki/mat32"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = float32(1.0e-6)

func TestReadTable(t *testing.T) {
	src := `the 0.1 0.2 0.3
cat -1 0 1
short 0.5
long 1 2 3 4
bad 0.1 xx 0.3
dog 0.0 1.0 0.0
`
	tb, err := ReadTable(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if tb.Dim() != 3 {
		t.Errorf("dim: got %d, want 3", tb.Dim())
	}
	if tb.Len() != 3 {
		t.Errorf("len: got %d, want 3", tb.Len())
	}
	if tb.Skipped != 3 {
		t.Errorf("skipped: got %d, want 3", tb.Skipped)
	}
	for tok, vec := range tb.Vecs {
		if len(vec) != tb.Dim() {
			t.Errorf("token %s: vector len %d != dim %d", tok, len(vec), tb.Dim())
		}
	}
	if _, ok := tb.Vector("short"); ok {
		t.Errorf("short row survived parsing")
	}
	if _, ok := tb.Vector("bad"); ok {
		t.Errorf("unparseable row survived parsing")
	}
	v, ok := tb.Vector("cat")
	if !ok || v[0] != -1 || v[2] != 1 {
		t.Errorf("cat vector wrong: %v", v)
	}
}

func TestReadTableEmpty(t *testing.T) {
	_, err := ReadTable(strings.NewReader("x\ny zz\n"))
	if !errors.Is(err, ErrMalformedInput) {
		t.Errorf("got %v, want ErrMalformedInput", err)
	}
}

func TestCosine(t *testing.T) {
	tests := []struct {
		a, b []float32
		cos  float32
	}{
		{[]float32{1, 0}, []float32{1, 0}, 1},
		{[]float32{1, 0}, []float32{0, 1}, 0},
		{[]float32{1, 0}, []float32{-1, 0}, -1},
		{[]float32{1, 1}, []float32{1, 0}, 1 / mat32.Sqrt(2)},
		{[]float32{0, 0}, []float32{1, 0}, 0},
	}
	for i, ts := range tests {
		c := Cosine(ts.a, ts.b)
		if mat32.Abs(c-ts.cos) > difTol {
			t.Errorf("%d: cos(%v, %v) = %v, want %v", i, ts.a, ts.b, c, ts.cos)
		}
	}
}

func TestNearest(t *testing.T) {
	tb, err := ReadTable(strings.NewReader("up 0 1\ndown 0 -1\nright 1 0\nslant 1 1\n"))
	if err != nil {
		t.Fatal(err)
	}
	ms := tb.Nearest([]float32{0, 2}, 2)
	if len(ms) != 2 {
		t.Fatalf("got %d matches, want 2", len(ms))
	}
	if ms[0].Token != "up" {
		t.Errorf("nearest: got %s, want up", ms[0].Token)
	}
	if ms[1].Token != "slant" {
		t.Errorf("second: got %s, want slant", ms[1].Token)
	}
	if ms[0].Sim < ms[1].Sim {
		t.Errorf("matches not in decreasing order: %v", ms)
	}
}
