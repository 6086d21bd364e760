// Copyright (c) 2026, The Naturalistic Data Analysis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decode

import (
	"math/rand"
	"strconv"

	"github.com/emer/emergent/erand"
	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ScrambleResult is the null accuracy distribution from repeated decoding
// against row-scrambled targets.
type ScrambleResult struct {
	Accs     []float64     `desc:"mean accuracy of each scrambling trial"`
	Mean     float64       `inactive:"+" desc:"mean of trial accuracies"`
	Std      float64       `inactive:"+" desc:"standard deviation of trial accuracies"`
	TrialLog *etable.Table `view:"no-inline" desc:"per-trial log"`
}

// Scramble estimates the chance baseline: it repeats the full
// leave-one-subject-out protocol NScramble times, each time randomly
// permuting the row order of the target embedding matrix, which decouples
// the temporal correspondence while preserving the marginal distribution of
// embedding vectors.  The global random stream is seeded once from RndSeed;
// each trial draws an independent permutation from it.
func Scramble(subs []*Subject, target *mat.Dense, pr *Params) (*ScrambleResult, error) {
	base := NewDecoder(subs, target, pr)
	if err := base.Check(); err != nil {
		return nil, err
	}
	rand.Seed(pr.RndSeed)

	nt, nd := target.Dims()
	ord := make([]int, nt)
	sr := &ScrambleResult{Accs: make([]float64, pr.NScramble)}
	for trial := 0; trial < pr.NScramble; trial++ {
		for i := range ord {
			ord[i] = i
		}
		erand.PermuteInts(ord)
		perm := mat.NewDense(nt, nd, nil)
		for i, oi := range ord {
			perm.SetRow(i, target.RawRowView(oi))
		}
		dc := NewDecoder(subs, perm, pr)
		if err := dc.Run(); err != nil {
			return nil, err
		}
		sr.Accs[trial] = dc.MeanAcc
	}
	sr.Mean = stat.Mean(sr.Accs, nil)
	sr.Std = stat.StdDev(sr.Accs, nil)
	sr.logTrials()
	return sr, nil
}

func (sr *ScrambleResult) logTrials() {
	dt := &etable.Table{}
	dt.SetMetaData("name", "ScrambleLog")
	dt.SetMetaData("desc", "null accuracy distribution from scrambled targets")
	dt.SetMetaData("read-only", "true")
	dt.SetMetaData("precision", strconv.Itoa(LogPrec))
	sch := etable.Schema{
		{Name: "Trial", Type: etensor.INT64},
		{Name: "Acc", Type: etensor.FLOAT64},
	}
	dt.SetFromSchema(sch, len(sr.Accs))
	for i, acc := range sr.Accs {
		dt.SetCellFloat("Trial", i, float64(i))
		dt.SetCellFloat("Acc", i, acc)
	}
	sr.TrialLog = dt
}
