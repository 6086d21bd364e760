// Copyright (c) 2026, The Naturalistic Data Analysis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wordvec

import "errors"

// ErrMalformedInput indicates an embedding resource with no parseable content.
var ErrMalformedInput = errors.New("malformed embedding resource")
