// Copyright (c) 2026, The Naturalistic Data Analysis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decode

import (
	"fmt"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/goki/gi/gi"
	"gonum.org/v1/gonum/mat"
)

// Subject is one subject's neural feature matrix: rows are time points
// (TRs), columns are regions of interest.  Read-only within the decoder.
type Subject struct {
	ID   string     `desc:"subject identifier"`
	Data *mat.Dense `view:"-" desc:"T x F feature matrix"`
}

// OpenSubject loads a subject's precomputed time-series from a
// tab-separated numeric table, rows = time points, columns = regions.
// The first row must name the columns.
func OpenSubject(id, fname string) (*Subject, error) {
	dt := &etable.Table{}
	err := dt.OpenCSV(gi.FileName(fname), etable.Tab)
	if err != nil {
		return nil, fmt.Errorf("decode: subject %s: %s: %w", id, fname, err)
	}
	nf := dt.NumCols()
	data := mat.NewDense(dt.Rows, nf, nil)
	for ri := 0; ri < dt.Rows; ri++ {
		for ci := 0; ci < nf; ci++ {
			data.Set(ri, ci, dt.CellFloatIdx(ci, ri))
		}
	}
	return &Subject{ID: id, Data: data}, nil
}

// TensorToDense copies a 2D float64 tensor (e.g. the resampled embedding
// timeline) into a dense matrix for fitting.
func TensorToDense(tsr *etensor.Float64) *mat.Dense {
	nr := tsr.Dim(0)
	nc := tsr.Dim(1)
	vals := make([]float64, len(tsr.Values))
	copy(vals, tsr.Values)
	return mat.NewDense(nr, nc, vals)
}
