// Copyright (c) 2026, The Naturalistic Data Analysis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decode

import "errors"

// ErrShapeMismatch indicates that a subject's time dimension does not match
// the target embedding matrix.  Checked before any fitting begins.
var ErrShapeMismatch = errors.New("subject / target shape mismatch")
