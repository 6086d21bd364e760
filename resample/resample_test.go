// Copyright (c) 2026, The Naturalistic Data Analysis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resample

import (
	"errors"
	"math"
	"testing"

	"github.com/tramaglino/naturalistic-data-analysis/transcript"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = 1.0e-8

// shiftParams returns params whose HRF kernel is a pure one-sample delay
// ([0, 1] after unit-sum normalization), so interpolated values are
// directly visible in the output.
func shiftParams() *Params {
	rp := &Params{}
	rp.Defaults()
	rp.HRF.Duration = 2
	return rp
}

func TestTimelineLengthLaw(t *testing.T) {
	rp := shiftParams()
	rp.PadPre = 3
	rp.PadPost = 2

	events := []transcript.Embedded{
		{Onset: 1.2, Vec: []float32{1, 0}},
		{Onset: 4.0, Vec: []float32{0, 1}},
		{Onset: 9.7, Vec: []float32{1, 1}},
	}
	tl, err := Timeline(events, rp)
	if err != nil {
		t.Fatal(err)
	}
	// ceil(9.7) - floor(1.2) + 3 + 2 = 9 + 5
	if tl.Dim(0) != 14 {
		t.Errorf("rows: got %d, want 14", tl.Dim(0))
	}
	if tl.Dim(1) != 2 {
		t.Errorf("dims: got %d, want 2", tl.Dim(1))
	}

	// dropping middle events must not change the length law
	tl2, err := Timeline([]transcript.Embedded{events[0], events[2]}, rp)
	if err != nil {
		t.Fatal(err)
	}
	if tl2.Dim(0) != tl.Dim(0) {
		t.Errorf("length changed after dropping events: %d vs %d", tl2.Dim(0), tl.Dim(0))
	}
}

func TestTimelineInterp(t *testing.T) {
	rp := shiftParams()
	rp.PadPre = 1
	rp.PadPost = 2

	events := []transcript.Embedded{
		{Onset: 0, Vec: []float32{0}},
		{Onset: 2, Vec: []float32{2}},
	}
	tl, err := Timeline(events, rp)
	if err != nil {
		t.Fatal(err)
	}
	// pre-pad row, samples at x=0 (0) and x=1 (interpolated 1), two post-pad
	// rows, all delayed one TR by the shift kernel
	want := []float64{0, 0, 0, 1, 0}
	if tl.Dim(0) != len(want) {
		t.Fatalf("rows: got %d, want %d", tl.Dim(0), len(want))
	}
	for i, w := range want {
		got := tl.Value([]int{i, 0})
		if math.Abs(got-w) > difTol {
			t.Errorf("row %d: got %v, want %v", i, got, w)
		}
	}
}

func TestTimelineBoundaryNaN(t *testing.T) {
	rp := shiftParams()
	events := []transcript.Embedded{
		{Onset: 1.5, Vec: []float32{1}},
		{Onset: 2.5, Vec: []float32{3}},
	}
	tl, err := Timeline(events, rp)
	if err != nil {
		t.Fatal(err)
	}
	if tl.Dim(0) != 2 {
		t.Fatalf("rows: got %d, want 2", tl.Dim(0))
	}
	// row 1 holds the shifted x=1 sample, which precedes the first knot
	// and must have been zeroed rather than extrapolated
	if got := tl.Value([]int{1, 0}); math.Abs(got) > difTol {
		t.Errorf("extrapolated sample not zeroed: %v", got)
	}
}

func TestTimelineDuplicateOnsets(t *testing.T) {
	rp := shiftParams()
	events := []transcript.Embedded{
		{Onset: 0, Vec: []float32{1}},
		{Onset: 0, Vec: []float32{5}}, // same onset: last writer wins
		{Onset: 2, Vec: []float32{5}},
	}
	tl, err := Timeline(events, rp)
	if err != nil {
		t.Fatal(err)
	}
	// constant 5 between knots, shifted one TR: x=0 -> 5 lands at row 1
	if got := tl.Value([]int{1, 0}); math.Abs(got-5) > difTol {
		t.Errorf("duplicate onset: got %v, want 5", got)
	}
}

func TestCheckLen(t *testing.T) {
	rp := shiftParams()
	events := []transcript.Embedded{
		{Onset: 0, Vec: []float32{1}},
		{Onset: 4, Vec: []float32{1}},
	}
	tl, err := Timeline(events, rp)
	if err != nil {
		t.Fatal(err)
	}
	if err := CheckLen(tl, 4); err != nil {
		t.Errorf("CheckLen(4): %v", err)
	}
	err = CheckLen(tl, 5)
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("got %v, want ErrLengthMismatch", err)
	}
}
