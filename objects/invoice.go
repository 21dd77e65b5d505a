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

// InvoiceData is the decoded content of a BOLT11 payment request.
type InvoiceData struct {
	EncodedPaymentRequest string         `mapstructure:"encoded_payment_request"`
	PaymentHash           string         `mapstructure:"payment_hash"`
	Amount                CurrencyAmount `mapstructure:"amount"`
	Memo                  string         `mapstructure:"memo"`
	CreatedAt             time.Time      `mapstructure:"created_at"`
	ExpiresAt             time.Time      `mapstructure:"expires_at"`
}

type Invoice struct {
	ID         string          `mapstructure:"id"`
	CreatedAt  time.Time       `mapstructure:"created_at"`
	Data       InvoiceData     `mapstructure:"data"`
	AmountPaid *CurrencyAmount `mapstructure:"amount_paid"`
}

func InvoiceFromJSON(raw map[string]interface{}) (*Invoice, error) {
	out := &Invoice{}
	if err := decode(raw, out); err != nil {
		return nil, err
	}
	return out, nil
}
