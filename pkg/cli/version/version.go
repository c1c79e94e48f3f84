// Copyright 2024 Aurum Ledger, Inc.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.md
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0

package version

import "fmt"

// Default build-time variables, passed via ldflags.
var (
	version = "unreleased"
	rev     = "HEAD"
)

func Pretty() string {
	return fmt.Sprintf("%s (rev %s)", version, rev)
}
