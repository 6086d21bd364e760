// Copyright (c) 2026, The Naturalistic Data Analysis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transcript

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tramaglino/naturalistic-data-analysis/wordvec"
)

func TestCleanToken(t *testing.T) {
	tests := []struct {
		raw, want string
	}{
		{"Hello,", "hello"},
		{"it's", "it's"},
		{"well-known", "wellknown"},
		{"[laughs]", "laughs"},
		{"...", ""},
		{"123", ""},
		{"DOG!", "dog"},
	}
	for _, ts := range tests {
		got := CleanToken(ts.raw)
		if got != ts.want {
			t.Errorf("CleanToken(%q) = %q, want %q", ts.raw, got, ts.want)
		}
	}
}

func writeRun(t *testing.T, dir, name, content string) string {
	t.Helper()
	fn := filepath.Join(dir, name)
	if err := os.WriteFile(fn, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return fn
}

func TestOpenRunMissingColumn(t *testing.T) {
	dir := t.TempDir()
	fn := writeRun(t, dir, "bad.tsv", "start\tduration\ttext\n0.5\t0.3\thello\n")
	_, err := OpenRun(fn, 0)
	if !errors.Is(err, ErrMalformedInput) {
		t.Errorf("got %v, want ErrMalformedInput", err)
	}
}

func TestOpenRunsOffsets(t *testing.T) {
	dir := t.TempDir()
	r1 := writeRun(t, dir, "run1.tsv", "onset\tduration\ttext\n1.0\t0.3\tHello\n2.5\t0.2\tthere!\n")
	r2 := writeRun(t, dir, "run2.tsv", "onset\tduration\ttext\n0.5\t0.3\tagain\n")

	pr := &Params{}
	pr.Defaults()
	pr.StartDelay = 10
	pr.Runs = []RunSpec{{File: r1, Duration: 100}, {File: r2, Duration: 80}}

	evs, err := OpenRuns(pr)
	if err != nil {
		t.Fatal(err)
	}
	if len(evs) != 3 {
		t.Fatalf("got %d events, want 3", len(evs))
	}
	wants := []Event{
		{Onset: 11, Token: "hello"},
		{Onset: 12.5, Token: "there"},
		{Onset: 110.5, Token: "again"},
	}
	for i, w := range wants {
		if evs[i] != w {
			t.Errorf("event %d: got %+v, want %+v", i, evs[i], w)
		}
	}
	for i := 1; i < len(evs); i++ {
		if evs[i].Onset < evs[i-1].Onset {
			t.Errorf("onsets not monotonic at %d: %v < %v", i, evs[i].Onset, evs[i-1].Onset)
		}
	}
}

func TestEmbed(t *testing.T) {
	tb, err := wordvec.ReadTable(strings.NewReader("hello 1 0\nit 0 1\nxylophone 1 1\n"))
	if err != nil {
		t.Fatal(err)
	}
	evs := Events{
		{Onset: 1, Token: "hello"},
		{Onset: 2, Token: "it's"},     // retried as it + s, it hits
		{Onset: 3, Token: "qwzzyblx"}, // no match, dropped
	}
	emb, miss := Embed(evs, tb)
	if miss != 1 {
		t.Errorf("miss count: got %d, want 1", miss)
	}
	if len(emb) != 2 {
		t.Fatalf("got %d embedded events, want 2", len(emb))
	}
	if emb[0].Onset != 1 || emb[0].Vec[0] != 1 {
		t.Errorf("first embedded event wrong: %+v", emb[0])
	}
	if emb[1].Onset != 2 || emb[1].Vec[1] != 1 {
		t.Errorf("retry event wrong: %+v", emb[1])
	}
}
