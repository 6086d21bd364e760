// Copyright (c) 2026, The Naturalistic Data Analysis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package transcript loads per-run stimulus transcripts (tab-separated tables
with onset, duration and text columns), cleans the word tokens, and
concatenates multiple runs into one continuous timeline of word events.
*/
package transcript

import (
	"fmt"
	"log"
	"regexp"
	"sort"
	"strings"

	"github.com/emer/etable/etable"
	"github.com/goki/gi/gi"
	"github.com/tramaglino/naturalistic-data-analysis/wordvec"
)

// Event is one spoken word with its onset in seconds on the
// concatenated timeline.
type Event struct {
	Onset float64 `desc:"onset in seconds from the start of the first scan"`
	Token string  `desc:"cleaned lowercase token"`
}

// Events is an onset-ordered sequence of word events.
type Events []Event

// Embedded is a word event with its embedding vector attached.
type Embedded struct {
	Onset float64   `desc:"onset in seconds"`
	Vec   []float32 `desc:"embedding vector for the token"`
}

// RunSpec names one run's transcript file and its scan duration in seconds.
// The duration is used to offset the onsets of all subsequent runs.
type RunSpec struct {
	File     string  `desc:"tab-separated transcript file with onset, duration, text columns"`
	Duration float64 `desc:"total scan duration of this run in seconds"`
}

// Params are the transcript timing parameters.
type Params struct {
	StartDelay float64   `def:"0" desc:"constant added to every onset, accounting for stimulus onset lag relative to scan start"`
	Runs       []RunSpec `desc:"runs in presentation order"`
}

func (pr *Params) Defaults() {
	pr.StartDelay = 0
}

// required transcript columns
var reqCols = []string{"onset", "duration", "text"}

// nonAlpha matches everything outside the Latin alphabet and apostrophe.
var nonAlpha = regexp.MustCompile(`[^a-zA-Z']+`)

// CleanToken strips all characters outside [a-zA-Z'] and lowercases.
// The result can be empty for purely non-verbal annotations.
func CleanToken(tok string) string {
	return strings.ToLower(nonAlpha.ReplaceAllString(tok, ""))
}

// OpenRun loads one run's transcript table and returns its events with
// onsets shifted by given offset (start delay plus cumulative duration of
// prior runs).  Tokens that clean to empty are dropped.
func OpenRun(fname string, offset float64) (Events, error) {
	dt := &etable.Table{}
	err := dt.OpenCSV(gi.FileName(fname), etable.Tab)
	if err != nil {
		return nil, fmt.Errorf("transcript: %s: %s: %w", fname, err, ErrMalformedInput)
	}
	for _, cn := range reqCols {
		if dt.ColIdx(cn) < 0 {
			return nil, fmt.Errorf("transcript: %s: missing %s column: %w", fname, cn, ErrMalformedInput)
		}
	}
	evs := make(Events, 0, dt.Rows)
	for ri := 0; ri < dt.Rows; ri++ {
		tok := CleanToken(dt.CellString("text", ri))
		if tok == "" {
			continue
		}
		evs = append(evs, Event{Onset: dt.CellFloat("onset", ri) + offset, Token: tok})
	}
	return evs, nil
}

// OpenRuns loads all runs in pr and concatenates them into one
// monotonically nondecreasing onset sequence.  Any malformed run aborts
// the whole load: downstream resampling depends on monotonic timestamps.
func OpenRuns(pr *Params) (Events, error) {
	var all Events
	offset := pr.StartDelay
	for _, rs := range pr.Runs {
		evs, err := OpenRun(rs.File, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, evs...)
		offset += rs.Duration
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Onset < all[j].Onset })
	return all, nil
}

// Embed attaches embedding vectors to events.  A token that misses the
// table is retried by splitting on apostrophes (contractions) and embedding
// each surviving part at the same onset.  Tokens still missing after the retry are
// dropped entirely -- not zero-filled -- so interpolation in later stages
// is driven only by embeddable words.  Returns the embedded events and the
// number of dropped tokens.
func Embed(evs Events, tb *wordvec.Table) ([]Embedded, int) {
	out := make([]Embedded, 0, len(evs))
	miss := 0
	for _, ev := range evs {
		if vec, ok := tb.Vector(ev.Token); ok {
			out = append(out, Embedded{Onset: ev.Onset, Vec: vec})
			continue
		}
		hit := false
		for _, part := range strings.Split(ev.Token, "'") {
			if part == "" {
				continue
			}
			if vec, ok := tb.Vector(part); ok {
				out = append(out, Embedded{Onset: ev.Onset, Vec: vec})
				hit = true
			}
		}
		if !hit {
			miss++
			log.Printf("transcript: no embedding for %q at %gs, dropping\n", ev.Token, ev.Onset)
		}
	}
	return out, miss
}
