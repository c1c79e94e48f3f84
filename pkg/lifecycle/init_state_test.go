// Copyright 2024 Aurum Ledger, Inc.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.md
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0

package lifecycle

import (
	"context"
	"errors"
	"testing"

	"github.com/aurumledger/localnet/pkg/catalog"
	"github.com/aurumledger/localnet/pkg/config"
	"github.com/aurumledger/localnet/pkg/mirror"
	lnet "github.com/aurumledger/localnet/pkg/net"
	"github.com/aurumledger/localnet/pkg/workspace"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

type fakeChecker struct {
	err       error
	calls     int
	multiNode bool
}

func (c *fakeChecker) Check(_ context.Context, multiNode bool) error {
	c.calls++
	c.multiNode = multiNode
	return c.err
}

type fakeScanner struct {
	report lnet.Report
}

func (s *fakeScanner) Scan(_ context.Context) lnet.Report {
	return s.report
}

func freeReport() lnet.Report {
	var statuses []lnet.PortStatus
	for _, p := range lnet.NecessaryPorts {
		statuses = append(statuses, lnet.PortStatus{Port: p, Severity: lnet.Fatal})
	}
	for _, p := range lnet.OptionalPorts {
		statuses = append(statuses, lnet.PortStatus{Port: p, Severity: lnet.Warning})
	}
	return lnet.Report{Statuses: statuses}
}

func takenReport(port int, severity lnet.Severity) lnet.Report {
	report := freeReport()
	for i := range report.Statuses {
		if report.Statuses[i].Port == port {
			report.Statuses[i].InUse = true
			report.Statuses[i].Severity = severity
		}
	}
	return report
}

type initFixture struct {
	fs      afero.Fs
	env     map[string]string
	checker *fakeChecker
	scanner *fakeScanner
	prep    *workspace.Preparer
}

func newInitFixture(t *testing.T) *initFixture {
	t.Helper()
	fs := afero.NewMemMapFs()
	files := map[string]string{
		"/assets/compose-network/network-node/config/node.properties": "a=1\n",
		"/assets/compose-network/mirror-node/application.yml": "mirror:\n" +
			"  importer:\n" +
			"    dataPath: /remote/bucket\n" +
			"  rest:\n" +
			"    port: 5551\n",
		"/assets/services/record-parser/parser.js": "// parser\n",
	}
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	}
	env := map[string]string{}
	prep := workspace.NewPreparer(fs, "/assets", "/work").WithSetenv(
		func(key, value string) error {
			env[key] = value
			return nil
		})
	return &initFixture{
		fs:      fs,
		env:     env,
		checker: &fakeChecker{},
		scanner: &fakeScanner{report: freeReport()},
		prep:    prep,
	}
}

func (f *initFixture) state(opts config.RunOptions) *InitState {
	return NewInitState(opts, catalog.Load(), f.checker, f.scanner, f.prep, f.fs)
}

func defaultOpts() config.RunOptions {
	return config.RunOptions{
		Network:    catalog.Local,
		WorkDir:    "/work",
		AssetDir:   "/assets",
		Host:       "127.0.0.1",
		RateLimits: true,
	}
}

func (f *initFixture) requireUntouched(t *testing.T) {
	t.Helper()
	require.Empty(t, f.env, "no environment variable should have been exported")
	exists, err := afero.DirExists(f.fs, "/work")
	require.NoError(t, err)
	require.False(t, exists, "the working directory shouldn't have been created")
}

func TestInitStateHappyPath(t *testing.T) {
	f := newInitFixture(t)

	event := f.state(defaultOpts()).Run(context.Background())

	require.Equal(t, Finish, event)
	require.Equal(t, 1, f.checker.calls)

	// The catalog entry and the path overrides landed in the environment.
	require.Equal(t, "0.49.7", f.env["NETWORK_NODE_IMAGE_TAG"])
	require.Equal(t, "0x12a", f.env["RELAY_CHAIN_ID"])
	require.Contains(t, f.env["APPLICATION_CONFIG_PATH"], "network-node")
	_, hasRelayNetwork := f.env[mirror.RelayNetworkEnv]
	require.False(t, hasRelayNetwork, "single node mode shouldn't export the relay node map")

	// The bootstrap properties merge the base template with the network's
	// overrides.
	props, err := afero.ReadFile(f.fs, "/work/network-node/config/bootstrap.properties")
	require.NoError(t, err)
	require.Contains(t, string(props), "records.logPeriod=2")
	require.Contains(t, string(props), "ledger.id=0x03")
	require.Contains(t, string(props), "contracts.chainId=298")

	// Full mode is off by default, so the mirror importer reads the local
	// stream; sections the tool doesn't own survive the rewrite.
	mirrorCfg, err := afero.ReadFile(f.fs, "/work/mirror-node/application.yml")
	require.NoError(t, err)
	require.Contains(t, string(mirrorCfg), "/var/mirror/stream")
	require.Contains(t, string(mirrorCfg), "port: 5551")
}

func TestInitStateUnknownNetwork(t *testing.T) {
	f := newInitFixture(t)
	opts := defaultOpts()
	opts.Network = catalog.Kind("devnet")

	event := f.state(opts).Run(context.Background())

	require.Equal(t, UnresolvableError, event)
	require.Zero(t, f.checker.calls, "host checks shouldn't run for an unknown network")
	f.requireUntouched(t)
}

func TestInitStateFailedHostCheck(t *testing.T) {
	f := newInitFixture(t)
	f.checker.err = errors.New("2 CPUs available, 4 are required")

	event := f.state(defaultOpts()).Run(context.Background())

	require.Equal(t, UnresolvableError, event)
	f.requireUntouched(t)
}

func TestInitStateNecessaryPortConflict(t *testing.T) {
	f := newInitFixture(t)
	f.scanner.report = takenReport(50211, lnet.Fatal)

	event := f.state(defaultOpts()).Run(context.Background())

	require.Equal(t, UnresolvableError, event)
	f.requireUntouched(t)
}

func TestInitStateOptionalPortConflictProceeds(t *testing.T) {
	f := newInitFixture(t)
	f.scanner.report = takenReport(3000, lnet.Warning)

	event := f.state(defaultOpts()).Run(context.Background())

	require.Equal(t, Finish, event)
}

func TestInitStateMultiNode(t *testing.T) {
	f := newInitFixture(t)
	opts := defaultOpts()
	opts.MultiNode = true

	event := f.state(opts).Run(context.Background())

	require.Equal(t, Finish, event)
	require.True(t, f.checker.multiNode, "the host check should use the multi node resource bar")
	require.Equal(t, mirror.MultiNodeRelayNetwork(), f.env[mirror.RelayNetworkEnv])

	mirrorCfg, err := afero.ReadFile(f.fs, "/work/mirror-node/application.yml")
	require.NoError(t, err)
	require.Contains(t, string(mirrorCfg), "network-node-3")
}

func TestInitStateFullModeKeepsRemoteImporter(t *testing.T) {
	f := newInitFixture(t)
	opts := defaultOpts()
	opts.FullMode = true

	event := f.state(opts).Run(context.Background())

	require.Equal(t, Finish, event)
	mirrorCfg, err := afero.ReadFile(f.fs, "/work/mirror-node/application.yml")
	require.NoError(t, err)
	require.Contains(t, string(mirrorCfg), "/remote/bucket")
	require.NotContains(t, string(mirrorCfg), "/var/mirror/stream")
}
