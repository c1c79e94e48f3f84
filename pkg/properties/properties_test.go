// Copyright 2024 Aurum Ledger, Inc.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.md
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0

package properties

import (
	"testing"

	"github.com/aurumledger/localnet/pkg/catalog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestBaseTemplateNotEmpty(t *testing.T) {
	pairs := Base()
	require.NotEmpty(t, pairs)
	for _, kv := range pairs {
		require.NotEmpty(t, kv.Name)
	}
}

func TestMergeLastKeyWins(t *testing.T) {
	base := []catalog.KV{
		{Name: "ledger.id", Value: "0x03"},
		{Name: "contracts.chainId", Value: "298"},
	}
	overrides := []catalog.KV{
		{Name: "contracts.chainId", Value: "296"},
		{Name: "staking.periodMins", Value: "1"},
	}

	merged := Merge(base, overrides)

	require.Equal(t, []catalog.KV{
		{Name: "ledger.id", Value: "0x03"},
		{Name: "contracts.chainId", Value: "296"},
		{Name: "staking.periodMins", Value: "1"},
	}, merged)
}

func TestMergeDuplicateInOverrides(t *testing.T) {
	overrides := []catalog.KV{
		{Name: "a", Value: "1"},
		{Name: "a", Value: "2"},
	}

	merged := Merge(nil, overrides)
	require.Equal(t, []catalog.KV{{Name: "a", Value: "2"}}, merged)
}

func TestRenderDeterministic(t *testing.T) {
	entry := []catalog.KV{
		{Name: "contracts.chainId", Value: "296"},
		{Name: "autoCreation.enabled", Value: "false"},
	}

	first := Render(Merge(Base(), entry))
	second := Render(Merge(Base(), entry))
	require.Equal(t, first, second, "regenerating with identical inputs must be byte-identical")
}

func TestWriteOverwritesExistingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/work/network-node/config/bootstrap.properties"

	require.NoError(t, afero.WriteFile(fs, path, []byte("stale=leftover\n"), 0644))
	require.NoError(t, Write(fs, path, []catalog.KV{{Name: "fresh", Value: "value"}}))

	content, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	require.Equal(t, "fresh=value\n", string(content))
}
