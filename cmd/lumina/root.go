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

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"code.luminapay.io/lumina/auth"
	"code.luminapay.io/lumina/client"
	"code.luminapay.io/lumina/environment"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	environmentFlagName = "environment"
	homeFlagName        = "home"
	verboseFlagName     = "verbose"
)

var rootCmd = &cobra.Command{
	Use:           "lumina",
	Short:         "Command line interface for Lumina wallets",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String(environmentFlagName, "mainnet", "Name of the environment to connect to")
	rootCmd.PersistentFlags().String(homeFlagName, "", "Directory holding the CLI state (defaults to ~/.lumina)")
	rootCmd.PersistentFlags().Bool(verboseFlagName, false, "Enable verbose logging")
}

func homeDir(cmd *cobra.Command) (string, error) {
	home, err := cmd.Flags().GetString(homeFlagName)
	if err != nil {
		return "", err
	}
	if home != "" {
		return home, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("couldn't resolve the user home directory: %w", err)
	}
	return filepath.Join(userHome, ".lumina"), nil
}

func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	verbose, err := cmd.Flags().GetBool(verboseFlagName)
	if err != nil {
		return nil, err
	}
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

// newClient assembles the wallet client for the selected environment and
// restores the persisted session when one exists.
func newClient(cmd *cobra.Command) (*client.Client, *fileSessionStore, error) {
	home, err := homeDir(cmd)
	if err != nil {
		return nil, nil, err
	}

	envName, err := cmd.Flags().GetString(environmentFlagName)
	if err != nil {
		return nil, nil, err
	}

	envStore, err := environment.NewFileStore(filepath.Join(home, "environments"))
	if err != nil {
		return nil, nil, err
	}
	env, err := environment.GetEnvironment(envStore, envName)
	if err != nil {
		return nil, nil, err
	}

	log, err := newLogger(cmd)
	if err != nil {
		return nil, nil, err
	}

	c := client.NewClient(log, env.RequesterConfig())

	sessions := newFileSessionStore(filepath.Join(home, "session.json"))
	if provider, err := auth.LoadJWTProvider(sessions); err == nil {
		c.SetAuthProvider(provider)
	}

	return c, sessions, nil
}
