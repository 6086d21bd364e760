// Copyright (c) 2026, The Naturalistic Data Analysis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/goki/gi/gi"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/tramaglino/naturalistic-data-analysis/decode"
	"github.com/tramaglino/naturalistic-data-analysis/resample"
	"github.com/tramaglino/naturalistic-data-analysis/transcript"
	"github.com/tramaglino/naturalistic-data-analysis/wordvec"
)

var (
	noScramble bool
	showWords  int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full decoding pipeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig(cfgFile)
		if err != nil {
			return err
		}
		return runPipeline(cfg)
	},
}

func init() {
	runCmd.Flags().BoolVar(&noScramble, "no-scramble", false, "skip the scrambling chance baseline")
	runCmd.Flags().IntVar(&showWords, "show-words", 0, "print the nearest tokens for the first N decoded time points")
	rootCmd.AddCommand(runCmd)
}

func runPipeline(cfg *Config) error {
	vecs, err := wordvec.OpenTable(cfg.Embeddings)
	if err != nil {
		return err
	}
	vecs.Report()

	target, err := buildTarget(cfg, vecs)
	if err != nil {
		return err
	}

	subs, err := openSubjects(cfg)
	if err != nil {
		return err
	}
	nt, _ := subs[0].Data.Dims()
	if err := resample.CheckLen(target, nt); err != nil {
		return err
	}

	dc := decode.NewDecoder(subs, decode.TensorToDense(target), cfg.DecodeParams())
	if err := dc.Run(); err != nil {
		return err
	}
	for _, fr := range dc.Folds {
		fmt.Printf("%s\tacc: %.4f\t(%d / %d hits)\n", fr.SubjID, fr.Acc, fr.Hits, nt)
	}
	fmt.Printf("mean\tacc: %.4f\n", dc.MeanAcc)

	if showWords > 0 {
		printDecodedWords(dc.Folds[0], vecs, showWords)
	}

	if err := saveResults(cfg, dc); err != nil {
		return err
	}

	if !noScramble && cfg.DecodeParams().NScramble > 0 {
		sr, err := decode.Scramble(subs, decode.TensorToDense(target), cfg.DecodeParams())
		if err != nil {
			return err
		}
		fmt.Printf("chance\tacc: %.4f +/- %.4f over %d trials\n", sr.Mean, sr.Std, len(sr.Accs))
		fnm := filepath.Join(cfg.OutDir, "scramble_log.tsv")
		if err := sr.TrialLog.SaveCSV(gi.FileName(fnm), etable.Tab, etable.Headers); err != nil {
			return err
		}
	}
	return nil
}

// buildTarget loads and embeds the transcripts and resamples them onto
// the scan grid.
func buildTarget(cfg *Config, vecs *wordvec.Table) (*etensor.Float64, error) {
	evs, err := transcript.OpenRuns(cfg.TranscriptParams())
	if err != nil {
		return nil, err
	}
	emb, miss := transcript.Embed(evs, vecs)
	log.Printf("transcript: %d events, %d embedded, %d dropped\n", len(evs), len(emb), miss)
	return resample.Timeline(emb, cfg.ResampleParams())
}

func openSubjects(cfg *Config) ([]*decode.Subject, error) {
	subs := make([]*decode.Subject, len(cfg.Subjects))
	for i, sc := range cfg.Subjects {
		sub, err := decode.OpenSubject(sc.ID, sc.File)
		if err != nil {
			return nil, err
		}
		subs[i] = sub
	}
	return subs, nil
}

// printDecodedWords shows the nearest vocabulary tokens to the first n
// predicted embedding vectors of the first fold.
func printDecodedWords(fr *decode.FoldResult, vecs *wordvec.Table, n int) {
	nt, nd := fr.Pred.Dims()
	if n > nt {
		n = nt
	}
	fmt.Printf("decoded words for %s:\n", fr.SubjID)
	vec := make([]float32, nd)
	for t := 0; t < n; t++ {
		for d := 0; d < nd; d++ {
			vec[d] = float32(fr.Pred.At(t, d))
		}
		ms := vecs.Nearest(vec, 3)
		fmt.Printf("  TR %d:", t)
		for _, m := range ms {
			fmt.Printf("  %s (%.3f)", m.Token, m.Sim)
		}
		fmt.Println()
	}
}

// saveResults writes the fold log and the fold-averaged coefficient
// matrix as tab-separated tables for external visualization.
func saveResults(cfg *Config, dc *decode.Decoder) error {
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return err
	}
	fnm := filepath.Join(cfg.OutDir, "fold_log.tsv")
	if err := dc.FoldLog.SaveCSV(gi.FileName(fnm), etable.Tab, etable.Headers); err != nil {
		return err
	}
	cf := dc.MeanCoef()
	fnm = filepath.Join(cfg.OutDir, "mean_coef.tsv")
	if err := coefTable(cf).SaveCSV(gi.FileName(fnm), etable.Tab, etable.Headers); err != nil {
		return err
	}
	return nil
}

// coefTable wraps a coefficient matrix in a table, one column per
// embedding dimension.
func coefTable(cf *mat.Dense) *etable.Table {
	nr, nc := cf.Dims()
	dt := &etable.Table{}
	dt.SetMetaData("name", "MeanCoef")
	dt.SetMetaData("desc", "fold-averaged regression coefficients, last row is the intercept")
	sch := make(etable.Schema, nc)
	for c := 0; c < nc; c++ {
		sch[c] = etable.Column{Name: fmt.Sprintf("Dim%d", c), Type: etensor.FLOAT64}
	}
	dt.SetFromSchema(sch, nr)
	for r := 0; r < nr; r++ {
		for c := 0; c < nc; c++ {
			dt.SetCellFloatIdx(c, r, cf.At(r, c))
		}
	}
	return dt
}
