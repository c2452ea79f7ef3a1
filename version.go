// Copyright 2025 Axial ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package axial

import (
	_ "embed"

	"github.com/axial-ml/axial/internal/buildinfo"
)

//go:embed VERSION
var versionFile string

func init() {
	buildinfo.SetDefaultVersion(versionFile)
}

// Version returns the library version. Release builds may override it via
// -ldflags; otherwise it comes from the VERSION file at the module root.
func Version() string {
	return buildinfo.Version
}
