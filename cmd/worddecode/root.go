// Copyright (c) 2026, The Naturalistic Data Analysis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:          "worddecode",
	Short:        "Decode word embeddings from fMRI time series",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `worddecode decodes the semantic content of a naturalistic story from
fMRI data: transcript words are mapped to pretrained embedding vectors,
resampled onto the scan grid through the hemodynamic response function, and
a linear mapping from neural features to embedding dimensions is fit and
evaluated with leave-one-subject-out cross-validation and top-K cosine
similarity ranking.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "worddecode.yaml", "pipeline configuration file")
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
