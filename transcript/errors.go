// Copyright (c) 2026, The Naturalistic Data Analysis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transcript

import "errors"

// ErrMalformedInput indicates an unparseable transcript file or one missing
// a required column.  It is fatal: later stages depend on monotonic onsets.
var ErrMalformedInput = errors.New("malformed transcript")
