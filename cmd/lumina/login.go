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
	"strings"

	"github.com/spf13/cobra"
)

const jwtFlagName = "jwt"

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().String(jwtFlagName, "", "The signed JWT, or a path to a file containing it")
	_ = loginCmd.MarkFlagRequired(jwtFlagName)
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Exchange a signed JWT for a platform session",
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := cmd.Flags().GetString(jwtFlagName)
		if err != nil {
			return err
		}
		if buf, err := os.ReadFile(token); err == nil {
			token = strings.TrimSpace(string(buf))
		}

		c, sessions, err := newClient(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		provider, err := c.LoginWithJWT(cmd.Context(), token, sessions)
		if err != nil {
			return err
		}

		fmt.Printf("Logged in. Session valid until %s.\n", provider.ValidUntil().Local())
		return nil
	},
}
