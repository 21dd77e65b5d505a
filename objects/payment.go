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

// OutgoingPayment is a payment sent from the wallet, e.g. paying a BOLT11
// invoice.
type OutgoingPayment struct {
	ID             string          `mapstructure:"id"`
	CreatedAt      time.Time       `mapstructure:"created_at"`
	ResolvedAt     *time.Time      `mapstructure:"resolved_at"`
	Status         PaymentStatus   `mapstructure:"status"`
	Amount         CurrencyAmount  `mapstructure:"amount"`
	Fees           *CurrencyAmount `mapstructure:"fees"`
	PaymentHash    string          `mapstructure:"payment_hash"`
	FailureMessage string          `mapstructure:"failure_message"`
}

func OutgoingPaymentFromJSON(raw map[string]interface{}) (*OutgoingPayment, error) {
	out := &OutgoingPayment{}
	if err := decode(raw, out); err != nil {
		return nil, err
	}
	return out, nil
}
