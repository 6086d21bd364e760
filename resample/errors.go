// Copyright (c) 2026, The Naturalistic Data Analysis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resample

import "errors"

// ErrLengthMismatch indicates that the resampled timeline length does not
// equal the number of acquired neural time points.
var ErrLengthMismatch = errors.New("timeline length mismatch")
