// Package testutil provides test fixtures and utilities.
//
// # Fixtures
//
// Output captured from the real tools is embedded using go:embed:
//
//	fixtures/multipass_list.json     multipass list --format json
//	fixtures/multipass_info.json     multipass info web --format json
//	fixtures/lxc_list.json           lxc list --format json
//	fixtures/lxc_config_show.yaml    lxc config show api
//	fixtures/malformed.json          truncated JSON
//	fixtures/registry.json           an environments.json file
//	fixtures/custom_template.toml    a custom template
//
// Fixture loads one as a string and fails the test if it is missing:
//
//	runner := system.NewMockRunner()
//	runner.AddResponse("lxc list", testutil.Fixture(t, testutil.LXCList))
//
// # Test Environment
//
// NewTestEnv builds an App over mock backends in a temporary directory
// and installs it as app.Default for the duration of the test:
//
//	env := testutil.NewTestEnv(t)
//	env.AddEnvironment(backend.KindVM, "web", "Running", "web-dev")
//	envs := env.App.Reconciler.List(ctx)
package testutil
