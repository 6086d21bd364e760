// Copyright (c) 2026, The Naturalistic Data Analysis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package decode implements leave-one-subject-out cross-validated linear
decoding of word-embedding vectors from neural time series.

For each fold, one subject is held out, an ordinary least-squares mapping
from neural features to embedding dimensions is fit on the stacked data of
all remaining subjects, and the held-out subject's predicted embeddings are
scored against the true per-TR embeddings by top-K cosine similarity
ranking.
*/
package decode

import (
	"fmt"
	"strconv"

	"github.com/emer/etable/agg"
	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/emer/etable/metric"
	"gonum.org/v1/gonum/mat"
)

// LogPrec is precision for saving float values in logs
const LogPrec = 4

// Params are the decoding parameters.
type Params struct {
	TopK      int   `def:"10" min:"1" desc:"a time point decodes correctly when its true embedding ranks within the top K most similar predictions"`
	NScramble int   `def:"100" min:"0" desc:"number of independent scrambling trials for the chance baseline"`
	RndSeed   int64 `def:"1" desc:"random seed for the scrambling baseline permutations"`
}

func (pr *Params) Defaults() {
	pr.TopK = 10
	pr.NScramble = 100
	pr.RndSeed = 1
}

// FoldResult is the outcome of one cross-validation fold.
type FoldResult struct {
	SubjID string           `desc:"held-out subject"`
	Hits   int              `desc:"number of time points decoded within the top K"`
	Acc    float64          `desc:"hits / T"`
	SimMat *etensor.Float64 `view:"no-inline" desc:"T x T cosine similarity between predicted and true rows"`
	Coef   *mat.Dense       `view:"-" desc:"(F+1) x D regression coefficients, last row is the intercept"`
	Pred   *mat.Dense       `view:"-" desc:"T x D predicted embedding time course for the held-out subject"`
}

// FoldBuilder assembles the training design and target matrices for one
// fold.  Build stacks the rows of every subject except holdOut into one
// ((N-1)*T) x F design matrix and tiles the target rows (N-1) times to
// match.
type FoldBuilder interface {
	Build(subs []*Subject, target *mat.Dense, holdOut int) (x, y *mat.Dense)
}

// stackFolds is the default FoldBuilder.
type stackFolds struct{}

func (sf stackFolds) Build(subs []*Subject, target *mat.Dense, holdOut int) (x, y *mat.Dense) {
	nt, nf := subs[0].Data.Dims()
	_, nd := target.Dims()
	n := len(subs) - 1
	x = mat.NewDense(n*nt, nf, nil)
	y = mat.NewDense(n*nt, nd, nil)
	row := 0
	for si, sub := range subs {
		if si == holdOut {
			continue
		}
		for t := 0; t < nt; t++ {
			x.SetRow(row*nt+t, sub.Data.RawRowView(t))
			y.SetRow(row*nt+t, target.RawRowView(t))
		}
		row++
	}
	return x, y
}

// Decoder runs the full leave-one-subject-out protocol.  Subjects and
// Target are read-only during decoding; re-running on identical inputs is
// deterministic.
type Decoder struct {
	Params  Params        `desc:"decoding parameters"`
	Subs    []*Subject    `desc:"per-subject T x F neural feature matrices"`
	Target  *mat.Dense    `desc:"shared T x D target embedding matrix"`
	Builder FoldBuilder   `view:"-" desc:"fold assembly, default stacks and tiles"`
	Folds   []*FoldResult `desc:"per-fold results, in subject order"`
	MeanAcc float64       `inactive:"+" desc:"mean accuracy across folds"`
	FoldLog *etable.Table `view:"no-inline" desc:"per-fold accuracy log"`
}

// NewDecoder returns a decoder over given subjects and target with the
// default fold builder.
func NewDecoder(subs []*Subject, target *mat.Dense, pr *Params) *Decoder {
	dc := &Decoder{Subs: subs, Target: target, Builder: stackFolds{}}
	if pr != nil {
		dc.Params = *pr
	} else {
		dc.Params.Defaults()
	}
	return dc
}

// Check verifies the alignment preconditions before any fitting: at least
// two subjects, every subject's T equal to the target's T, and one common
// feature count F across subjects.  Violations are ErrShapeMismatch -- no
// partial fold execution.
func (dc *Decoder) Check() error {
	if len(dc.Subs) < 2 {
		return fmt.Errorf("decode: need at least 2 subjects, have %d: %w", len(dc.Subs), ErrShapeMismatch)
	}
	nt, _ := dc.Target.Dims()
	_, nf := dc.Subs[0].Data.Dims()
	for _, sub := range dc.Subs {
		st, sf := sub.Data.Dims()
		if st != nt {
			return fmt.Errorf("decode: subject %s has %d time points, target has %d: %w", sub.ID, st, nt, ErrShapeMismatch)
		}
		if sf != nf {
			return fmt.Errorf("decode: subject %s has %d features, subject %s has %d: %w", sub.ID, sf, dc.Subs[0].ID, nf, ErrShapeMismatch)
		}
	}
	return nil
}

// Run executes every fold in order and aggregates.  Fails fast on shape
// mismatch before training begins.
func (dc *Decoder) Run() error {
	if err := dc.Check(); err != nil {
		return err
	}
	dc.Folds = make([]*FoldResult, len(dc.Subs))
	for si := range dc.Subs {
		fr, err := dc.RunFold(si)
		if err != nil {
			return err
		}
		dc.Folds[si] = fr
	}
	dc.Aggregate()
	return nil
}

// RunFold trains on all subjects except holdOut, predicts the held-out
// subject's embedding time course, and scores it.
func (dc *Decoder) RunFold(holdOut int) (*FoldResult, error) {
	x, y := dc.Builder.Build(dc.Subs, dc.Target, holdOut)
	coef, err := fitOLS(x, y)
	if err != nil {
		return nil, fmt.Errorf("decode: fold %s: %w", dc.Subs[holdOut].ID, err)
	}
	pred := predict(dc.Subs[holdOut].Data, coef)
	fr := &FoldResult{SubjID: dc.Subs[holdOut].ID, Coef: coef, Pred: pred}
	fr.SimMat = SimilarityMat(pred, dc.Target)
	fr.Hits = TopKHits(fr.SimMat, dc.Params.TopK)
	nt, _ := dc.Target.Dims()
	fr.Acc = float64(fr.Hits) / float64(nt)
	return fr, nil
}

// fitOLS solves the least-squares problem [x 1] * w = y by QR, returning
// (F+1) x D coefficients with the intercept in the last row.
func fitOLS(x, y *mat.Dense) (*mat.Dense, error) {
	nr, nf := x.Dims()
	_, nd := y.Dims()
	xa := mat.NewDense(nr, nf+1, nil)
	for r := 0; r < nr; r++ {
		for c := 0; c < nf; c++ {
			xa.Set(r, c, x.At(r, c))
		}
		xa.Set(r, nf, 1)
	}
	w := mat.NewDense(nf+1, nd, nil)
	if err := w.Solve(xa, y); err != nil {
		return nil, fmt.Errorf("least-squares solve failed: %w", err)
	}
	return w, nil
}

// predict applies coefficients from fitOLS to a T x F matrix.
func predict(x, coef *mat.Dense) *mat.Dense {
	nt, nf := x.Dims()
	_, nd := coef.Dims()
	pred := mat.NewDense(nt, nd, nil)
	row := make([]float64, nf+1)
	for t := 0; t < nt; t++ {
		copy(row, x.RawRowView(t))
		row[nf] = 1
		for d := 0; d < nd; d++ {
			dot := 0.0
			for c := 0; c <= nf; c++ {
				dot += row[c] * coef.At(c, d)
			}
			pred.Set(t, d, dot)
		}
	}
	return pred
}

// SimilarityMat returns the T x T cosine similarity matrix between the rows
// of pred and the rows of target.
func SimilarityMat(pred, target *mat.Dense) *etensor.Float64 {
	nt, _ := pred.Dims()
	sm := etensor.NewFloat64([]int{nt, nt}, nil, []string{"Pred", "True"})
	for i := 0; i < nt; i++ {
		pr := pred.RawRowView(i)
		for j := 0; j < nt; j++ {
			sm.Set([]int{i, j}, metric.Cosine64(pr, target.RawRowView(j)))
		}
	}
	return sm
}

// TopKHits counts the time points whose diagonal similarity ranks within
// the top K of their row.  A row is a hit when strictly fewer than K other
// rows score strictly higher than the diagonal, so exact ties favor the
// diagonal.
func TopKHits(sm *etensor.Float64, topK int) int {
	nt := sm.Dim(0)
	hits := 0
	for i := 0; i < nt; i++ {
		diag := sm.Value([]int{i, i})
		higher := 0
		for j := 0; j < nt; j++ {
			if sm.Value([]int{i, j}) > diag {
				higher++
			}
		}
		if higher < topK {
			hits++
		}
	}
	return hits
}

// Aggregate builds the fold log table and computes the mean accuracy
// across folds.  Only runs after all folds complete.
func (dc *Decoder) Aggregate() {
	dt := &etable.Table{}
	dt.SetMetaData("name", "FoldLog")
	dt.SetMetaData("desc", "per-fold decoding accuracy")
	dt.SetMetaData("read-only", "true")
	dt.SetMetaData("precision", strconv.Itoa(LogPrec))
	sch := etable.Schema{
		{Name: "Subject", Type: etensor.STRING},
		{Name: "Hits", Type: etensor.FLOAT64},
		{Name: "Acc", Type: etensor.FLOAT64},
	}
	dt.SetFromSchema(sch, len(dc.Folds))
	for i, fr := range dc.Folds {
		dt.SetCellString("Subject", i, fr.SubjID)
		dt.SetCellFloat("Hits", i, float64(fr.Hits))
		dt.SetCellFloat("Acc", i, fr.Acc)
	}
	dc.FoldLog = dt
	ix := etable.NewIdxView(dt)
	dc.MeanAcc = agg.Mean(ix, "Acc")[0]
}

// MeanCoef averages the regression coefficients across folds, for
// downstream visualization of which features drive the decoding.
func (dc *Decoder) MeanCoef() *mat.Dense {
	if len(dc.Folds) == 0 {
		return nil
	}
	nr, nc := dc.Folds[0].Coef.Dims()
	mc := mat.NewDense(nr, nc, nil)
	for _, fr := range dc.Folds {
		mc.Add(mc, fr.Coef)
	}
	mc.Scale(1/float64(len(dc.Folds)), mc)
	return mc
}
