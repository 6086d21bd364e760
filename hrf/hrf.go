// Copyright (c) 2026, The Naturalistic Data Analysis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package hrf implements the canonical double-gamma hemodynamic response
function (HRF), the convolution kernel that models the lagged blood-flow
response to neural activity, along with the causal convolution used to
apply it to a stimulus time course.
*/
package hrf

import "math"

// Params are the double-gamma HRF shape parameters, in seconds.
// The response is the difference of two gamma densities: a positive peak
// and a later undershoot scaled down by PURatio.
type Params struct {
	TR         float64 `def:"1" min:"0" desc:"sampling interval (repetition time) of the kernel in seconds"`
	Duration   float64 `def:"32" min:"0" desc:"length of kernel support in seconds -- response is zero beyond this lag"`
	PeakDelay  float64 `def:"6" desc:"time to the positive response peak"`
	UnderDelay float64 `def:"16" desc:"time to the undershoot trough"`
	PeakDisp   float64 `def:"1" desc:"dispersion of the peak gamma"`
	UnderDisp  float64 `def:"1" desc:"dispersion of the undershoot gamma"`
	PURatio    float64 `def:"6" desc:"ratio of peak amplitude to undershoot amplitude"`

	PeakShape  float64 `inactive:"+" view:"-" desc:"gamma shape of peak = PeakDelay / PeakDisp"`
	UnderShape float64 `inactive:"+" view:"-" desc:"gamma shape of undershoot = UnderDelay / UnderDisp"`
}

func (hp *Params) Defaults() {
	hp.TR = 1
	hp.Duration = 32
	hp.PeakDelay = 6
	hp.UnderDelay = 16
	hp.PeakDisp = 1
	hp.UnderDisp = 1
	hp.PURatio = 6
	hp.Update()
}

func (hp *Params) Update() {
	hp.PeakShape = hp.PeakDelay / hp.PeakDisp
	hp.UnderShape = hp.UnderDelay / hp.UnderDisp
}

// gammaPDF is the gamma probability density with given shape and scale.
func gammaPDF(x, shape, scale float64) float64 {
	if x <= 0 {
		return 0
	}
	return math.Pow(x, shape-1) * math.Exp(-x/scale) / (math.Gamma(shape) * math.Pow(scale, shape))
}

// Resp returns the un-normalized response at lag t seconds.
func (hp *Params) Resp(t float64) float64 {
	return gammaPDF(t, hp.PeakShape, hp.PeakDisp) - gammaPDF(t, hp.UnderShape, hp.UnderDisp)/hp.PURatio
}

// Kernel returns the discrete HRF kernel sampled at TR steps over
// [0, Duration), normalized to unit sum so convolution preserves the
// overall signal scale.
func (hp *Params) Kernel() []float64 {
	hp.Update()
	n := int(math.Ceil(hp.Duration / hp.TR))
	kern := make([]float64, n)
	sum := 0.0
	for i := range kern {
		kern[i] = hp.Resp(float64(i) * hp.TR)
		sum += kern[i]
	}
	if sum != 0 {
		for i := range kern {
			kern[i] /= sum
		}
	}
	return kern
}

// ConvolveFull computes the full discrete convolution of sig with kern and
// truncates the result to len(sig) samples.  Only the lag-delayed head of
// the response is kept -- the undershoot tail past the end of the signal is
// discarded, matching the established analysis convention for this pipeline.
func ConvolveFull(sig, kern []float64) []float64 {
	out := make([]float64, len(sig))
	for i := range sig {
		if sig[i] == 0 {
			continue
		}
		kmax := len(kern)
		if kmax > len(sig)-i {
			kmax = len(sig) - i
		}
		for k := 0; k < kmax; k++ {
			out[i+k] += sig[i] * kern[k]
		}
	}
	return out
}
