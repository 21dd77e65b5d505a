// Copyright (C) 2024 Lumina Payments Limited
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package environment_test

import (
	"testing"

	"code.luminapay.io/lumina/environment"
	"code.luminapay.io/lumina/requester"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironment(t *testing.T) {
	t.Run("Built-in environments are always available", testBuiltInEnvironmentsAlwaysAvailable)
	t.Run("Saved environments round-trip through the file store", testSavedEnvironmentsRoundTrip)
	t.Run("A file with a built-in name overrides it", testFileOverridesBuiltIn)
	t.Run("Getting an unknown environment fails", testGettingUnknownEnvironmentFails)
	t.Run("An environment without a host cannot be used", testEnvironmentWithoutHostCannotBeUsed)
	t.Run("The listing merges built-ins and files", testListingMergesBuiltInsAndFiles)
	t.Run("Configured retries reach the transport config", testConfiguredRetriesReachTransportConfig)
}

func newStoreForTest(t *testing.T) *environment.FileStore {
	t.Helper()
	store, err := environment.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func testBuiltInEnvironmentsAlwaysAvailable(t *testing.T) {
	t.Parallel()
	store := newStoreForTest(t)

	env, err := environment.GetEnvironment(store, "mainnet")

	require.NoError(t, err)
	assert.Equal(t, "mainnet", env.Name)
	assert.Equal(t, "https://api.luminapay.io/graphql/2024-04", env.BaseURL)
	assert.Equal(t, env.BaseURL, env.RequesterConfig().BaseURL)
}

func testSavedEnvironmentsRoundTrip(t *testing.T) {
	t.Parallel()
	store := newStoreForTest(t)
	saved := &environment.Environment{
		Name:       "staging",
		BaseURL:    "https://api.staging.example.com/graphql",
		WSEndpoint: "wss://api.staging.example.com/graphql/subscriptions",
		Retries:    5,
	}
	require.NoError(t, store.SaveEnvironment(saved))

	env, err := environment.GetEnvironment(store, "staging")

	require.NoError(t, err)
	assert.Equal(t, saved, env)
}

func testFileOverridesBuiltIn(t *testing.T) {
	t.Parallel()
	store := newStoreForTest(t)
	require.NoError(t, store.SaveEnvironment(&environment.Environment{
		Name:    "testnet",
		BaseURL: "https://api.local.example.com/graphql",
	}))

	env, err := environment.GetEnvironment(store, "testnet")

	require.NoError(t, err)
	assert.Equal(t, "https://api.local.example.com/graphql", env.BaseURL)
}

func testGettingUnknownEnvironmentFails(t *testing.T) {
	t.Parallel()
	store := newStoreForTest(t)

	_, err := environment.GetEnvironment(store, "nowhere")

	doesNotExist := &environment.DoesNotExistError{}
	require.ErrorAs(t, err, &doesNotExist)
	assert.Equal(t, "nowhere", doesNotExist.Name)
}

func testEnvironmentWithoutHostCannotBeUsed(t *testing.T) {
	t.Parallel()
	store := newStoreForTest(t)
	require.NoError(t, store.SaveEnvironment(&environment.Environment{
		Name: "broken",
	}))

	_, err := environment.GetEnvironment(store, "broken")

	assert.ErrorIs(t, err, environment.ErrEnvironmentDoesNotHaveHostConfigured)
}

func testListingMergesBuiltInsAndFiles(t *testing.T) {
	t.Parallel()
	store := newStoreForTest(t)
	require.NoError(t, store.SaveEnvironment(&environment.Environment{
		Name:    "staging",
		BaseURL: "https://api.staging.example.com/graphql",
	}))

	names, err := store.ListEnvironments()

	require.NoError(t, err)
	assert.Equal(t, []string{"mainnet", "staging", "testnet"}, names)
}

func testConfiguredRetriesReachTransportConfig(t *testing.T) {
	t.Parallel()

	env := &environment.Environment{
		Name:    "staging",
		BaseURL: "https://api.staging.example.com/graphql",
		Retries: 7,
	}
	assert.Equal(t, uint64(7), env.RequesterConfig().Retries)

	// Without an explicit value the platform default applies.
	defaulted := &environment.Environment{
		Name:    "staging",
		BaseURL: "https://api.staging.example.com/graphql",
	}
	assert.Equal(t, requester.DefaultConfig().Retries, defaulted.RequesterConfig().Retries)
}
