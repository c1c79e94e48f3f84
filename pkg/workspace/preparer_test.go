// Copyright 2024 Aurum Ledger, Inc.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.md
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0

package workspace

import (
	"path/filepath"
	"testing"

	"github.com/aurumledger/localnet/pkg/catalog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func newTestPreparer(t *testing.T) (*Preparer, afero.Fs, map[string]string) {
	t.Helper()
	fs := afero.NewMemMapFs()
	env := map[string]string{}
	p := NewPreparer(fs, "/assets", "/work").WithSetenv(func(key, value string) error {
		env[key] = value
		return nil
	})
	return p, fs, env
}

func seedAssets(t *testing.T, fs afero.Fs) {
	t.Helper()
	files := map[string]string{
		"/assets/compose-network/network-node/config/node.properties": "a=1\n",
		"/assets/compose-network/network-node/config/api.properties":  "b=2\n",
		"/assets/compose-network/mirror-node/application.yml":         "mirror:\n  rest:\n    port: 5551\n",
		"/assets/services/record-parser/parser.js":                    "// parser\n",
		"/assets/services/record-parser/lib/util.js":                  "// util\n",
	}
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	}
}

func TestCreateSkeleton(t *testing.T) {
	p, fs, _ := newTestPreparer(t)

	require.NoError(t, p.CreateSkeleton())

	for _, dir := range []string{
		"/work/network-logs/node",
		"/work/records",
		"/work/services",
	} {
		exists, err := afero.DirExists(fs, dir)
		require.NoError(t, err)
		require.True(t, exists, "%s should exist", dir)
	}
}

func TestCopyPaths(t *testing.T) {
	p, fs, _ := newTestPreparer(t)
	seedAssets(t, fs)

	require.NoError(t, p.CopyPaths(DefaultCopyPairs()))

	for _, path := range []string{
		"/work/network-node/config/node.properties",
		"/work/network-node/config/api.properties",
		"/work/mirror-node/application.yml",
		"/work/services/record-parser/parser.js",
		"/work/services/record-parser/lib/util.js",
	} {
		exists, err := afero.Exists(fs, path)
		require.NoError(t, err)
		require.True(t, exists, "%s should have been copied", path)
	}

	content, err := afero.ReadFile(fs, "/work/network-node/config/node.properties")
	require.NoError(t, err)
	require.Equal(t, "a=1\n", string(content))
}

func TestCopyPathsMissingSource(t *testing.T) {
	p, fs, _ := newTestPreparer(t)
	seedAssets(t, fs)
	require.NoError(t, fs.RemoveAll("/assets/services/record-parser"))

	err := p.CopyPaths(DefaultCopyPairs())
	require.Error(t, err)
	require.Contains(t, err.Error(), "required source")
}

func TestPathOverrides(t *testing.T) {
	p, _, _ := newTestPreparer(t)

	overrides := p.PathOverrides()

	require.Equal(t, []catalog.KV{
		{Name: "NETWORK_NODE_LOGS_ROOT_PATH", Value: filepath.Join("/work", "network-logs", "node")},
		{Name: "APPLICATION_CONFIG_PATH", Value: filepath.Join("/work", "network-node", "config")},
		{Name: "MIRROR_NODE_CONFIG_PATH", Value: filepath.Join("/work", "mirror-node")},
		{Name: "RECORD_PARSER_ROOT_PATH", Value: filepath.Join("/work", "services", "record-parser")},
	}, overrides)
}

func TestExportEnv(t *testing.T) {
	p, _, env := newTestPreparer(t)

	entries := []catalog.KV{
		{Name: "NETWORK_NODE_IMAGE_TAG", Value: "0.49.7"},
		{Name: "RELAY_CHAIN_ID", Value: "0x12a"},
	}
	require.NoError(t, p.ExportEnv(entries, false))

	require.Equal(t, "0.49.7", env["NETWORK_NODE_IMAGE_TAG"])
	require.Equal(t, "0x12a", env["RELAY_CHAIN_ID"])
	_, forced := env["RELAY_RATE_LIMIT_DISABLED"]
	require.False(t, forced, "rate limit overrides shouldn't be exported when limits are on")
}

func TestExportEnvDisabledRateLimitsWinOverCatalog(t *testing.T) {
	p, _, env := newTestPreparer(t)

	entries := []catalog.KV{
		{Name: "RELAY_RATE_LIMIT_DISABLED", Value: "false"},
		{Name: "RELAY_RATE_LIMIT_TINYBAR", Value: "100000"},
	}
	require.NoError(t, p.ExportEnv(entries, true))

	require.Equal(t, "true", env["RELAY_RATE_LIMIT_DISABLED"])
	require.Equal(t, "0", env["RELAY_RATE_LIMIT_TINYBAR"])
	require.Equal(t, "0", env["RELAY_RATE_LIMIT_DUTY_CYCLE"])
}

func TestRemoveGenerated(t *testing.T) {
	p, fs, _ := newTestPreparer(t)
	seedAssets(t, fs)
	require.NoError(t, p.CreateSkeleton())
	require.NoError(t, p.CopyPaths(DefaultCopyPairs()))

	require.NoError(t, p.RemoveGenerated())

	for _, path := range []string{
		"/work/network-logs",
		"/work/network-node",
		"/work/mirror-node",
		"/work/services",
	} {
		exists, err := afero.Exists(fs, path)
		require.NoError(t, err)
		require.False(t, exists, "%s should have been removed", path)
	}

	// The asset sources are untouched.
	exists, err := afero.Exists(fs, "/assets/services/record-parser/parser.js")
	require.NoError(t, err)
	require.True(t, exists)
}
