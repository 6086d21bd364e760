// Copyright (c) 2026, The Naturalistic Data Analysis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package resample converts irregular word-onset embedding events into a
uniformly sampled per-TR signal: per-dimension linear interpolation onto a
unit time grid, zero padding for acquisition lead-in and lead-out, and
convolution with the hemodynamic response kernel.
*/
package resample

import (
	"fmt"
	"math"

	"github.com/emer/etable/etensor"
	"github.com/tramaglino/naturalistic-data-analysis/hrf"
	"github.com/tramaglino/naturalistic-data-analysis/transcript"
)

// Params are the resampling parameters.
type Params struct {
	PadPre  int        `def:"0" min:"0" desc:"zero samples prepended before the first word, models acquisition lead time"`
	PadPost int        `def:"0" min:"0" desc:"zero samples appended after the last word"`
	HRF     hrf.Params `view:"inline" desc:"hemodynamic response kernel"`
}

func (rp *Params) Defaults() {
	rp.PadPre = 0
	rp.PadPost = 0
	rp.HRF.Defaults()
}

// Timeline builds the per-TR embedding signal from onset-ordered embedded
// events.  The unit-step sample grid runs from floor(min onset) to
// ceil(max onset); each embedding dimension is linearly interpolated between
// event knots independently, boundary extrapolation is zeroed, PadPre/PadPost
// zero rows are added, and each dimension is convolved with the HRF kernel.
// The result is a (T x D) tensor with
// T = ceil(max)-floor(min) + PadPre + PadPost.
func Timeline(events []transcript.Embedded, rp *Params) (*etensor.Float64, error) {
	if len(events) == 0 {
		return nil, fmt.Errorf("resample: no events to resample")
	}
	nd := len(events[0].Vec)

	// collapse duplicate onsets: last event at a knot wins
	knots := make([]transcript.Embedded, 0, len(events))
	for _, ev := range events {
		if n := len(knots); n > 0 && knots[n-1].Onset == ev.Onset {
			knots[n-1] = ev
			continue
		}
		knots = append(knots, ev)
	}

	t0 := math.Floor(knots[0].Onset)
	t1 := math.Ceil(knots[len(knots)-1].Onset)
	ni := int(t1 - t0)
	nt := rp.PadPre + ni + rp.PadPost

	tl := etensor.NewFloat64([]int{nt, nd}, nil, []string{"TR", "Dim"})
	kern := rp.HRF.Kernel()
	sig := make([]float64, nt)

	for d := 0; d < nd; d++ {
		for i := range sig {
			sig[i] = 0
		}
		ki := 0
		for i := 0; i < ni; i++ {
			x := t0 + float64(i)
			for ki < len(knots)-1 && knots[ki+1].Onset <= x {
				ki++
			}
			v := interp(knots, ki, x, d)
			if math.IsNaN(v) { // extrapolation outside the event range
				v = 0
			}
			sig[rp.PadPre+i] = v
		}
		conv := hrf.ConvolveFull(sig, kern)
		for i := 0; i < nt; i++ {
			tl.Set([]int{i, d}, conv[i])
		}
	}
	return tl, nil
}

// interp linearly interpolates dimension d at time x, given that knots[ki]
// is the last knot with onset <= x (or the first knot overall).  Times
// outside the knot range yield NaN.
func interp(knots []transcript.Embedded, ki int, x float64, d int) float64 {
	k0 := knots[ki]
	if x < k0.Onset || (ki == len(knots)-1 && x > k0.Onset) {
		return math.NaN()
	}
	if x == k0.Onset || ki == len(knots)-1 {
		return float64(k0.Vec[d])
	}
	k1 := knots[ki+1]
	frac := (x - k0.Onset) / (k1.Onset - k0.Onset)
	return float64(k0.Vec[d]) + frac*(float64(k1.Vec[d])-float64(k0.Vec[d]))
}

// CheckLen verifies that the timeline has exactly wantTRs rows, matching
// the paired neural data.  All downstream fitting assumes exact
// row-alignment, so a mismatch is fatal.
func CheckLen(tl *etensor.Float64, wantTRs int) error {
	if tl.Dim(0) != wantTRs {
		return fmt.Errorf("resample: timeline has %d TRs, neural data has %d: %w", tl.Dim(0), wantTRs, ErrLengthMismatch)
	}
	return nil
}
