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

	"github.com/spf13/cobra"
)

const (
	amountMsatsFlagName = "amount-msats"
	memoFlagName        = "memo"
)

func init() {
	rootCmd.AddCommand(createInvoiceCmd)
	createInvoiceCmd.Flags().Int64(amountMsatsFlagName, 0, "Invoice amount in millisatoshis (0 lets the payer pick)")
	createInvoiceCmd.Flags().String(memoFlagName, "", "Memo attached to the invoice")
}

var createInvoiceCmd = &cobra.Command{
	Use:   "create-invoice",
	Short: "Create a BOLT11 invoice on the wallet",
	RunE: func(cmd *cobra.Command, args []string) error {
		amountMsats, err := cmd.Flags().GetInt64(amountMsatsFlagName)
		if err != nil {
			return err
		}
		memo, err := cmd.Flags().GetString(memoFlagName)
		if err != nil {
			return err
		}

		c, _, err := newClient(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		invoice, err := c.CreateInvoice(cmd.Context(), amountMsats, memo)
		if err != nil {
			return err
		}

		fmt.Printf("Invoice %s\n", invoice.ID)
		fmt.Println(invoice.Data.EncodedPaymentRequest)
		return nil
	},
}
