// Copyright (c) 2026, The Naturalistic Data Analysis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decode

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/emer/etable/etensor"
)

func TestOpenSubject(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "sub-01.tsv")
	content := "roi1\troi2\troi3\n1.5\t2\t-0.5\n0\t1\t2\n"
	if err := os.WriteFile(fn, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	sub, err := OpenSubject("sub-01", fn)
	if err != nil {
		t.Fatal(err)
	}
	if sub.ID != "sub-01" {
		t.Errorf("id: got %q", sub.ID)
	}
	nr, nc := sub.Data.Dims()
	if nr != 2 || nc != 3 {
		t.Fatalf("shape: got %dx%d, want 2x3", nr, nc)
	}
	if sub.Data.At(0, 0) != 1.5 || sub.Data.At(0, 2) != -0.5 || sub.Data.At(1, 2) != 2 {
		t.Errorf("values wrong: %v", sub.Data.RawMatrix().Data)
	}
}

func TestOpenSubjectMissing(t *testing.T) {
	if _, err := OpenSubject("x", filepath.Join(t.TempDir(), "nope.tsv")); err == nil {
		t.Errorf("expected error for missing file")
	}
}

func TestTensorToDense(t *testing.T) {
	tsr := etensor.NewFloat64([]int{2, 3}, nil, []string{"TR", "Dim"})
	for i := range tsr.Values {
		tsr.Values[i] = float64(i)
	}
	m := TensorToDense(tsr)
	nr, nc := m.Dims()
	if nr != 2 || nc != 3 {
		t.Fatalf("shape: got %dx%d, want 2x3", nr, nc)
	}
	if m.At(1, 2) != 5 {
		t.Errorf("At(1,2): got %v, want 5", m.At(1, 2))
	}
	// copy, not alias
	tsr.Values[5] = 99
	if m.At(1, 2) != 5 {
		t.Errorf("dense matrix aliases tensor storage")
	}
}
