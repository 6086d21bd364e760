// Copyright (c) 2026, The Naturalistic Data Analysis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package wordvec loads pretrained word-embedding tables from the standard
flat-text format (one token per line followed by its vector values) and
provides lookup and nearest-neighbor queries over them.

The table is loaded once and is read-only thereafter.
*/
package wordvec

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/c2h5oh/datasize"
	"github.com/goki/mat32"
)

// Table is an immutable token -> vector mapping of fixed dimension.
type Table struct {
	Dims    int                  `desc:"dimension of every vector in the table, set by the first valid line"`
	Vecs    map[string][]float32 `desc:"token to vector mapping"`
	Skipped int                  `inactive:"+" desc:"number of malformed lines skipped during load"`
}

// OpenTable loads a whitespace-delimited embedding table from given file.
func OpenTable(fname string) (*Table, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tb, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("wordvec: %s: %w", fname, err)
	}
	return tb, nil
}

// ReadTable parses an embedding table from the reader.  Each line is
// token v1 .. vD -- the first valid line fixes D, and any later line with a
// different value count (or unparseable values) is skipped with a warning.
// A resource with no valid line at all fails with ErrMalformedInput.
func ReadTable(r io.Reader) (*Table, error) {
	tb := &Table{Vecs: make(map[string][]float32)}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	ln := 0
	for sc.Scan() {
		ln++
		fds := strings.Fields(sc.Text())
		if len(fds) < 2 {
			tb.skip(ln, "too few fields")
			continue
		}
		if tb.Dims > 0 && len(fds)-1 != tb.Dims {
			tb.skip(ln, fmt.Sprintf("has %d values, want %d", len(fds)-1, tb.Dims))
			continue
		}
		vec := make([]float32, len(fds)-1)
		ok := true
		for i, fd := range fds[1:] {
			v, err := strconv.ParseFloat(fd, 32)
			if err != nil {
				ok = false
				break
			}
			vec[i] = float32(v)
		}
		if !ok {
			tb.skip(ln, "unparseable value")
			continue
		}
		if tb.Dims == 0 {
			tb.Dims = len(vec)
		}
		tb.Vecs[fds[0]] = vec
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(tb.Vecs) == 0 {
		return nil, fmt.Errorf("no parseable lines: %w", ErrMalformedInput)
	}
	return tb, nil
}

func (tb *Table) skip(ln int, msg string) {
	tb.Skipped++
	log.Printf("wordvec: skipping line %d: %s\n", ln, msg)
}

// Dim returns the vector dimension.
func (tb *Table) Dim() int { return tb.Dims }

// Len returns the number of tokens in the table.
func (tb *Table) Len() int { return len(tb.Vecs) }

// Vector returns the vector for given token, false if the token is unknown.
func (tb *Table) Vector(token string) ([]float32, bool) {
	v, ok := tb.Vecs[token]
	return v, ok
}

// MemSize returns an estimate of the memory held by the vectors,
// in human-readable form.
func (tb *Table) MemSize() string {
	mem := uint64(len(tb.Vecs)) * uint64(tb.Dims) * 4
	return (datasize.ByteSize)(mem).HumanReadable()
}

// Report logs a one-line summary of the loaded table.
func (tb *Table) Report() {
	log.Printf("wordvec: %d tokens, dim %d, mem %v, skipped %d lines\n", tb.Len(), tb.Dims, tb.MemSize(), tb.Skipped)
}

// Cosine returns the cosine similarity between two vectors of the
// table's dimension.
func Cosine(a, b []float32) float32 {
	var dot, na, nb float32
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	den := mat32.Sqrt(na) * mat32.Sqrt(nb)
	if den == 0 {
		return 0
	}
	return dot / den
}

// Match is one nearest-neighbor result.
type Match struct {
	Token string
	Sim   float32
}

// Nearest returns the n tokens closest to vec by cosine similarity,
// in decreasing order of similarity.  Fewer than n are returned if the
// table is smaller than n.
func (tb *Table) Nearest(vec []float32, n int) []Match {
	ms := make([]Match, 0, len(tb.Vecs))
	for tok, v := range tb.Vecs {
		ms = append(ms, Match{Token: tok, Sim: Cosine(vec, v)})
	}
	sort.Slice(ms, func(i, j int) bool {
		if ms[i].Sim != ms[j].Sim {
			return ms[i].Sim > ms[j].Sim
		}
		return ms[i].Token < ms[j].Token // stable order for exact ties
	})
	if n < len(ms) {
		ms = ms[:n]
	}
	return ms
}
