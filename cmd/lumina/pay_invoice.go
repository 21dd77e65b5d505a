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

	"code.luminapay.io/lumina/client"
	"code.luminapay.io/lumina/objects"

	"github.com/spf13/cobra"
)

const (
	invoiceFlagName     = "invoice"
	nodeIDFlagName      = "node-id"
	keyFileFlagName     = "key-file"
	timeoutSecsFlagName = "timeout-secs"
	maxFeesFlagName     = "max-fees-msats"
)

func init() {
	rootCmd.AddCommand(payInvoiceCmd)
	payInvoiceCmd.Flags().String(invoiceFlagName, "", "The BOLT11 encoded invoice to pay")
	payInvoiceCmd.Flags().String(nodeIDFlagName, "", "Identifier of the node whose key signs the payment")
	payInvoiceCmd.Flags().String(keyFileFlagName, "", "Path to the signing key (PEM, DER or base64)")
	payInvoiceCmd.Flags().Int(timeoutSecsFlagName, 60, "Seconds the node keeps trying to route the payment")
	payInvoiceCmd.Flags().Int64(maxFeesFlagName, 0, "Maximum routing fees in millisatoshis")
	_ = payInvoiceCmd.MarkFlagRequired(invoiceFlagName)
	_ = payInvoiceCmd.MarkFlagRequired(nodeIDFlagName)
	_ = payInvoiceCmd.MarkFlagRequired(keyFileFlagName)
	_ = payInvoiceCmd.MarkFlagRequired(maxFeesFlagName)
}

var payInvoiceCmd = &cobra.Command{
	Use:   "pay-invoice",
	Short: "Pay a BOLT11 invoice and wait for it to settle",
	RunE: func(cmd *cobra.Command, args []string) error {
		encodedInvoice, err := cmd.Flags().GetString(invoiceFlagName)
		if err != nil {
			return err
		}
		nodeID, err := cmd.Flags().GetString(nodeIDFlagName)
		if err != nil {
			return err
		}
		keyFile, err := cmd.Flags().GetString(keyFileFlagName)
		if err != nil {
			return err
		}
		timeoutSecs, err := cmd.Flags().GetInt(timeoutSecsFlagName)
		if err != nil {
			return err
		}
		maxFeesMsats, err := cmd.Flags().GetInt64(maxFeesFlagName)
		if err != nil {
			return err
		}

		material, err := os.ReadFile(keyFile)
		if err != nil {
			return fmt.Errorf("couldn't read the signing key file: %w", err)
		}

		c, _, err := newClient(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		c.UnlockWallet(nodeID, material)

		payment, err := c.PayInvoiceAndAwaitCompletion(cmd.Context(), client.PayInvoiceParams{
			SigningNodeID:    nodeID,
			EncodedInvoice:   encodedInvoice,
			TimeoutSecs:      timeoutSecs,
			MaximumFeesMsats: maxFeesMsats,
		})
		if err != nil {
			return err
		}

		if payment.Status != objects.PaymentStatusSuccess {
			return fmt.Errorf("the payment settled as %s: %s", payment.Status, payment.FailureMessage)
		}

		fmt.Printf("Payment %s succeeded", payment.ID)
		if payment.Fees != nil {
			fmt.Printf(" (fees: %s)", formatAmount(*payment.Fees))
		}
		fmt.Println()
		return nil
	},
}
