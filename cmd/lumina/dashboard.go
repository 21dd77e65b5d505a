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

	"code.luminapay.io/lumina/objects"

	"github.com/spf13/cobra"
)

const numPaymentsFlagName = "num-payments"

func init() {
	rootCmd.AddCommand(dashboardCmd)
	dashboardCmd.Flags().Int(numPaymentsFlagName, 10, "Number of recent payments to display")
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Display the wallet status, balances and recent payments",
	RunE: func(cmd *cobra.Command, args []string) error {
		numPayments, err := cmd.Flags().GetInt(numPaymentsFlagName)
		if err != nil {
			return err
		}

		c, _, err := newClient(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		dashboard, err := c.WalletDashboard(cmd.Context(), numPayments)
		if err != nil {
			return err
		}

		wallet := dashboard.Wallet
		fmt.Printf("Wallet %s (%s)\n", wallet.ID, wallet.Status)
		if wallet.Balances != nil {
			fmt.Printf("  owned:       %s\n", formatAmount(wallet.Balances.OwnedBalance))
			fmt.Printf("  sendable:    %s\n", formatAmount(wallet.Balances.AvailableToSendBalance))
			fmt.Printf("  withdrawable: %s\n", formatAmount(wallet.Balances.AvailableToWithdrawBalance))
		}

		if dashboard.Payments == nil || len(dashboard.Payments.Entities) == 0 {
			fmt.Println("No payments yet.")
			return nil
		}

		fmt.Printf("Last %d of %d payments:\n", len(dashboard.Payments.Entities), dashboard.Payments.Count)
		for _, payment := range dashboard.Payments.Entities {
			fmt.Printf("  %s  %-9s  %s\n", payment.CreatedAt.Format("2006-01-02 15:04"), payment.Status, formatAmount(payment.Amount))
		}
		return nil
	},
}

func formatAmount(amount objects.CurrencyAmount) string {
	return fmt.Sprintf("%d %s", amount.Value, amount.Unit)
}
