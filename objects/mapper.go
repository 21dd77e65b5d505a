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

// Package objects maps raw GraphQL response payloads to typed entities.
// Mappers are pure: raw JSON in, typed object out. Unknown enum members map
// to each enum's FUTURE_VALUE sentinel so a server-side addition never
// breaks a deployed client.
package objects

import (
	"fmt"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

func decode(raw map[string]interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: out,
		// JSON numbers arrive as float64; amounts are int64 fields
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(time.RFC3339),
			enumHook,
		),
	})
	if err != nil {
		return fmt.Errorf("couldn't build the decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("couldn't map the response payload: %w", err)
	}
	return nil
}

var (
	paymentStatusType     = reflect.TypeOf(PaymentStatus(""))
	walletStatusType      = reflect.TypeOf(WalletStatus(""))
	transactionStatusType = reflect.TypeOf(TransactionStatus(""))
	currencyUnitType      = reflect.TypeOf(CurrencyUnit(""))
)

// enumHook funnels every wire string destined for an enum type through its
// parser, so unknown members become the FUTURE_VALUE sentinel instead of
// leaking unvalidated strings into typed fields.
func enumHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}
	s, ok := data.(string)
	if !ok {
		return data, nil
	}

	switch to {
	case paymentStatusType:
		return ParsePaymentStatus(s), nil
	case walletStatusType:
		return ParseWalletStatus(s), nil
	case transactionStatusType:
		return ParseTransactionStatus(s), nil
	case currencyUnitType:
		return ParseCurrencyUnit(s), nil
	default:
		return data, nil
	}
}
