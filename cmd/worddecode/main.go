// Copyright (c) 2026, The Naturalistic Data Analysis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// worddecode runs the natural-language decoding pipeline: it aligns a
// story transcript with pretrained word embeddings, resamples it to the
// fMRI sampling grid through the hemodynamic response, and decodes the
// embedding time course from each subject's neural data with
// leave-one-subject-out cross-validation.
package main

func main() {
	Execute()
}
