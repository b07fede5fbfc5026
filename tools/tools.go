// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build tools

// This file exists just so `go mod tidy` won't remove
// tool modules from our go.mod. addlicense stamps the
// header above onto new files under cmd/ and pkg/.
package tools

import (
	_ "github.com/google/addlicense"
)
