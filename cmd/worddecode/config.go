// Copyright (c) 2026, The Naturalistic Data Analysis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tramaglino/naturalistic-data-analysis/decode"
	"github.com/tramaglino/naturalistic-data-analysis/resample"
	"github.com/tramaglino/naturalistic-data-analysis/transcript"
)

// RunConfig names one run's transcript and its scan duration.
type RunConfig struct {
	File     string  `yaml:"file"`
	Duration float64 `yaml:"duration"`
}

// SubjectConfig names one subject's time-series file.
type SubjectConfig struct {
	ID   string `yaml:"id"`
	File string `yaml:"file"`
}

// HRFConfig overrides the double-gamma kernel shape; zero values keep
// the defaults.
type HRFConfig struct {
	TR         float64 `yaml:"tr,omitempty"`
	Duration   float64 `yaml:"duration,omitempty"`
	PeakDelay  float64 `yaml:"peak_delay,omitempty"`
	UnderDelay float64 `yaml:"under_delay,omitempty"`
	PeakDisp   float64 `yaml:"peak_disp,omitempty"`
	UnderDisp  float64 `yaml:"under_disp,omitempty"`
	PURatio    float64 `yaml:"pu_ratio,omitempty"`
}

// Config is the in-memory representation of worddecode.yaml.  Everything
// the pipeline needs is explicit here; there is no process-wide state.
type Config struct {
	Embeddings string          `yaml:"embeddings"`
	StartDelay float64         `yaml:"start_delay,omitempty"`
	Runs       []RunConfig     `yaml:"runs"`
	PadPre     int             `yaml:"pad_pre,omitempty"`
	PadPost    int             `yaml:"pad_post,omitempty"`
	HRF        HRFConfig       `yaml:"hrf,omitempty"`
	TopK       int             `yaml:"top_k,omitempty"`
	NScramble  int             `yaml:"n_scramble,omitempty"`
	Seed       int64           `yaml:"seed,omitempty"`
	Subjects   []SubjectConfig `yaml:"subjects"`
	OutDir     string          `yaml:"out_dir,omitempty"`
}

// LoadConfig reads and validates the yaml configuration file.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("cannot parse config %s: %w", path, err)
	}
	if cfg.Embeddings == "" {
		return nil, fmt.Errorf("config %s: embeddings file is required", path)
	}
	if len(cfg.Runs) == 0 {
		return nil, fmt.Errorf("config %s: at least one run is required", path)
	}
	if len(cfg.Subjects) < 2 {
		return nil, fmt.Errorf("config %s: at least two subjects are required", path)
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "."
	}
	return cfg, nil
}

// TranscriptParams maps the config onto transcript timing parameters.
func (cfg *Config) TranscriptParams() *transcript.Params {
	pr := &transcript.Params{}
	pr.Defaults()
	pr.StartDelay = cfg.StartDelay
	for _, rc := range cfg.Runs {
		pr.Runs = append(pr.Runs, transcript.RunSpec{File: rc.File, Duration: rc.Duration})
	}
	return pr
}

// ResampleParams maps the config onto resampling parameters.
func (cfg *Config) ResampleParams() *resample.Params {
	rp := &resample.Params{}
	rp.Defaults()
	rp.PadPre = cfg.PadPre
	rp.PadPost = cfg.PadPost
	setNonZero(&rp.HRF.TR, cfg.HRF.TR)
	setNonZero(&rp.HRF.Duration, cfg.HRF.Duration)
	setNonZero(&rp.HRF.PeakDelay, cfg.HRF.PeakDelay)
	setNonZero(&rp.HRF.UnderDelay, cfg.HRF.UnderDelay)
	setNonZero(&rp.HRF.PeakDisp, cfg.HRF.PeakDisp)
	setNonZero(&rp.HRF.UnderDisp, cfg.HRF.UnderDisp)
	setNonZero(&rp.HRF.PURatio, cfg.HRF.PURatio)
	rp.HRF.Update()
	return rp
}

// DecodeParams maps the config onto decoding parameters.
func (cfg *Config) DecodeParams() *decode.Params {
	pr := &decode.Params{}
	pr.Defaults()
	if cfg.TopK > 0 {
		pr.TopK = cfg.TopK
	}
	if cfg.NScramble > 0 {
		pr.NScramble = cfg.NScramble
	}
	if cfg.Seed != 0 {
		pr.RndSeed = cfg.Seed
	}
	return pr
}

func setNonZero(dst *float64, v float64) {
	if v != 0 {
		*dst = v
	}
}
