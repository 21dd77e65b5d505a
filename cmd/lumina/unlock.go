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
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"syscall"

	"code.luminapay.io/lumina/keys"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	encryptedKeyFlagName = "encrypted-key"
	outputKeyFlagName    = "output"
)

// encryptedKeyFile is the JSON layout the platform hands out when a wallet
// is initialized with a password-protected signing key.
type encryptedKeyFile struct {
	Ciphertext []byte `json:"ciphertext"`
	Salt       []byte `json:"salt"`
	Nonce      []byte `json:"nonce"`
	Iterations int    `json:"iterations"`
}

func init() {
	rootCmd.AddCommand(unlockCmd)
	unlockCmd.Flags().String(nodeIDFlagName, "", "Identifier of the node the key belongs to")
	unlockCmd.Flags().String(encryptedKeyFlagName, "", "Path to the encrypted signing key file")
	unlockCmd.Flags().String(outputKeyFlagName, "", "Where to write the decrypted signing key")
	_ = unlockCmd.MarkFlagRequired(nodeIDFlagName)
	_ = unlockCmd.MarkFlagRequired(encryptedKeyFlagName)
	_ = unlockCmd.MarkFlagRequired(outputKeyFlagName)
}

var unlockCmd = &cobra.Command{
	Use:   "unlock",
	Short: "Decrypt a password-protected signing key",
	RunE: func(cmd *cobra.Command, args []string) error {
		nodeID, err := cmd.Flags().GetString(nodeIDFlagName)
		if err != nil {
			return err
		}
		encryptedKeyPath, err := cmd.Flags().GetString(encryptedKeyFlagName)
		if err != nil {
			return err
		}
		outputPath, err := cmd.Flags().GetString(outputKeyFlagName)
		if err != nil {
			return err
		}

		buf, err := os.ReadFile(encryptedKeyPath)
		if err != nil {
			return fmt.Errorf("couldn't read the encrypted key file: %w", err)
		}
		encrypted := encryptedKeyFile{}
		if err := json.Unmarshal(buf, &encrypted); err != nil {
			return fmt.Errorf("couldn't parse the encrypted key file: %w", err)
		}

		password, err := promptForPassword("Enter the key password: ")
		if err != nil {
			return err
		}

		cache := keys.NewCache(nil)
		material, err := cache.DecryptWithPassword(nodeID, password, keys.EncryptedKey{
			Ciphertext: encrypted.Ciphertext,
			Salt:       encrypted.Salt,
			Nonce:      encrypted.Nonce,
			Iterations: encrypted.Iterations,
		})
		if err != nil {
			decryptionErr := &keys.DecryptionError{}
			if errors.As(err, &decryptionErr) {
				return fmt.Errorf("wrong password for node %s", decryptionErr.NodeID)
			}
			return err
		}

		if err := os.WriteFile(outputPath, material, 0o600); err != nil {
			return fmt.Errorf("couldn't write the decrypted key: %w", err)
		}

		fmt.Printf("Signing key for node %s written to %s.\n", nodeID, outputPath)
		return nil
	},
}

func promptForPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("couldn't read the password: %w", err)
	}
	return string(password), nil
}
