// Copyright 2024 Aurum Ledger, Inc.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.md
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0

// Package properties produces the consensus node's bootstrap.properties file
// from an embedded base template plus per-network overrides.
package properties

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"

	"github.com/aurumledger/localnet/pkg/catalog"
	"github.com/spf13/afero"
)

//go:embed bootstrap.properties
var baseTemplate string

// Base returns the ordered key/value pairs of the embedded base template.
// Blank lines and '#' comments are skipped.
func Base() []catalog.KV {
	var pairs []catalog.KV
	for _, line := range strings.Split(baseTemplate, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if k, v, ok := strings.Cut(line, "="); ok {
			pairs = append(pairs, catalog.KV{Name: k, Value: v})
		}
	}
	return pairs
}

// Merge appends overrides to base in catalog order and de-duplicates by key.
// The last occurrence of a key wins, but a key keeps the position of its
// first occurrence so regenerated files stay stable. The consuming process
// then never has to decide between first- and last-occurrence semantics.
func Merge(base, overrides []catalog.KV) []catalog.KV {
	combined := append(append([]catalog.KV{}, base...), overrides...)

	last := make(map[string]string, len(combined))
	for _, kv := range combined {
		last[kv.Name] = kv.Value
	}

	var merged []catalog.KV
	seen := make(map[string]bool, len(last))
	for _, kv := range combined {
		if seen[kv.Name] {
			continue
		}
		seen[kv.Name] = true
		merged = append(merged, catalog.KV{Name: kv.Name, Value: last[kv.Name]})
	}
	return merged
}

// Render serializes pairs as flat key=value lines. Output is deterministic
// for identical input.
func Render(pairs []catalog.KV) []byte {
	buf := &bytes.Buffer{}
	for _, kv := range pairs {
		fmt.Fprintf(buf, "%s=%s\n", kv.Name, kv.Value)
	}
	return buf.Bytes()
}

// Write replaces the file at path with the rendered pairs. Any previous
// content is discarded, never merged with.
func Write(fs afero.Fs, path string, pairs []catalog.KV) error {
	if err := afero.WriteFile(fs, path, Render(pairs), 0644); err != nil {
		return fmt.Errorf("writing bootstrap properties to %s: %w", path, err)
	}
	return nil
}
