// Copyright (c) 2026, The Naturalistic Data Analysis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/emer/etable/etable"
	"github.com/goki/gi/gi"
	"github.com/spf13/cobra"

	"github.com/tramaglino/naturalistic-data-analysis/decode"
	"github.com/tramaglino/naturalistic-data-analysis/resample"
	"github.com/tramaglino/naturalistic-data-analysis/wordvec"
)

var chanceCmd = &cobra.Command{
	Use:   "chance",
	Short: "Estimate the scrambled chance baseline only",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig(cfgFile)
		if err != nil {
			return err
		}
		vecs, err := wordvec.OpenTable(cfg.Embeddings)
		if err != nil {
			return err
		}
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
		sr, err := decode.Scramble(subs, decode.TensorToDense(target), cfg.DecodeParams())
		if err != nil {
			return err
		}
		fmt.Printf("chance\tacc: %.4f +/- %.4f over %d trials\n", sr.Mean, sr.Std, len(sr.Accs))
		if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
			return err
		}
		fnm := filepath.Join(cfg.OutDir, "scramble_log.tsv")
		return sr.TrialLog.SaveCSV(gi.FileName(fnm), etable.Tab, etable.Headers)
	},
}

func init() {
	rootCmd.AddCommand(chanceCmd)
}
