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

// Package environment names the platform deployments the SDK can talk to.
// The built-in mainnet and testnet environments cover most applications;
// custom ones are loaded from configuration files.
package environment

import (
	"errors"
	"fmt"

	"code.luminapay.io/lumina/requester"
)

var ErrEnvironmentDoesNotHaveHostConfigured = errors.New("environment configuration does not have any GraphQL host set")

type DoesNotExistError struct {
	Name string
}

func NewDoesNotExistError(name string) *DoesNotExistError {
	return &DoesNotExistError{Name: name}
}

func (e *DoesNotExistError) Error() string {
	return fmt.Sprintf("the environment %q does not exist", e.Name)
}

type Environment struct {
	Name       string `toml:"name"`
	BaseURL    string `toml:"baseUrl"`
	WSEndpoint string `toml:"wsEndpoint"`
	Retries    uint64 `toml:"retries"`
}

func (e *Environment) EnsureCanConnect() error {
	if len(e.BaseURL) > 0 {
		return nil
	}
	return ErrEnvironmentDoesNotHaveHostConfigured
}

// RequesterConfig maps the environment onto the transport configuration.
func (e *Environment) RequesterConfig() requester.Config {
	cfg := requester.DefaultConfig()
	cfg.BaseURL = e.BaseURL
	cfg.WSEndpoint = e.WSEndpoint
	if e.Retries > 0 {
		cfg.Retries = e.Retries
	}
	return cfg
}

//go:generate go run github.com/golang/mock/mockgen -destination mocks/store_mock.go -package mocks code.luminapay.io/lumina/environment Store
type Store interface {
	EnvironmentExists(string) (bool, error)
	GetEnvironment(string) (*Environment, error)
	SaveEnvironment(*Environment) error
	ListEnvironments() ([]string, error)
}

func GetEnvironment(store Store, name string) (*Environment, error) {
	exists, err := store.EnvironmentExists(name)
	if err != nil {
		return nil, fmt.Errorf("couldn't verify environment existence: %w", err)
	}
	if !exists {
		return nil, NewDoesNotExistError(name)
	}
	env, err := store.GetEnvironment(name)
	if err != nil {
		return nil, fmt.Errorf("couldn't get environment %s: %w", name, err)
	}

	if err := env.EnsureCanConnect(); err != nil {
		return nil, err
	}
	return env, nil
}

// Mainnet is the production deployment.
func Mainnet() *Environment {
	return &Environment{
		Name:       "mainnet",
		BaseURL:    "https://api.luminapay.io/graphql/2024-04",
		WSEndpoint: "wss://api.luminapay.io/graphql/subscriptions/2024-04",
		Retries:    3,
	}
}

// Testnet runs against Bitcoin testnet funds.
func Testnet() *Environment {
	return &Environment{
		Name:       "testnet",
		BaseURL:    "https://api.testnet.luminapay.io/graphql/2024-04",
		WSEndpoint: "wss://api.testnet.luminapay.io/graphql/subscriptions/2024-04",
		Retries:    3,
	}
}
