// Copyright (c) 2026, The Naturalistic Data Analysis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package naturalistic decodes natural language from fMRI data recorded
during naturalistic story listening.

The pipeline maps transcript words to pretrained embedding vectors
(wordvec), concatenates and cleans per-run transcripts (transcript),
resamples the word events onto the scan grid through the hemodynamic
response function (resample, hrf), and fits a cross-validated linear
decoder from neural features to embedding dimensions, scored by top-K
cosine similarity ranking against a scrambled chance baseline (decode).
*/
package naturalistic
