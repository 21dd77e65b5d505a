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

package objects

import (
	"time"
)

// Balances is the wallet's view of its funds. Owned and available can
// differ while payments are in flight or funds await settlement.
type Balances struct {
	OwnedBalance               CurrencyAmount `mapstructure:"owned_balance"`
	AvailableToSendBalance     CurrencyAmount `mapstructure:"available_to_send_balance"`
	AvailableToWithdrawBalance CurrencyAmount `mapstructure:"available_to_withdraw_balance"`
}

type Wallet struct {
	ID           string       `mapstructure:"id"`
	CreatedAt    time.Time    `mapstructure:"created_at"`
	UpdatedAt    time.Time    `mapstructure:"updated_at"`
	Status       WalletStatus `mapstructure:"status"`
	Balances     *Balances    `mapstructure:"balances"`
	ThirdPartyID string       `mapstructure:"third_party_identifier"`
}

func WalletFromJSON(raw map[string]interface{}) (*Wallet, error) {
	out := &Wallet{}
	if err := decode(raw, out); err != nil {
		return nil, err
	}
	return out, nil
}

// PageInfo carries relay-style pagination cursors.
type PageInfo struct {
	HasNextPage     bool   `mapstructure:"has_next_page"`
	HasPreviousPage bool   `mapstructure:"has_previous_page"`
	StartCursor     string `mapstructure:"start_cursor"`
	EndCursor       string `mapstructure:"end_cursor"`
}

// WalletToPaymentsConnection pages through the wallet's payments.
type WalletToPaymentsConnection struct {
	Count    int               `mapstructure:"count"`
	PageInfo PageInfo          `mapstructure:"page_info"`
	Entities []OutgoingPayment `mapstructure:"entities"`
}

func WalletToPaymentsConnectionFromJSON(raw map[string]interface{}) (*WalletToPaymentsConnection, error) {
	out := &WalletToPaymentsConnection{}
	if err := decode(raw, out); err != nil {
		return nil, err
	}
	return out, nil
}
