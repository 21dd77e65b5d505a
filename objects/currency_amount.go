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
	"errors"

	"github.com/shopspring/decimal"
)

var ErrUnknownCurrencyUnit = errors.New("cannot convert an unknown currency unit")

// CurrencyAmount is an amount in its original wire unit. Lightning amounts
// use millisatoshi precision, so all conversions go through msats.
type CurrencyAmount struct {
	Value int64        `mapstructure:"value"`
	Unit  CurrencyUnit `mapstructure:"unit"`
}

// msats per unit
var msatsMultipliers = map[CurrencyUnit]decimal.Decimal{
	CurrencyUnitMillisatoshi: decimal.New(1, 0),
	CurrencyUnitSatoshi:      decimal.New(1000, 0),
	CurrencyUnitBitcoin:      decimal.New(1, 11),
}

// Msats converts the amount to millisatoshis. Fiat and future units have no
// fixed msats rate and fail.
func (a CurrencyAmount) Msats() (decimal.Decimal, error) {
	mult, ok := msatsMultipliers[a.Unit]
	if !ok {
		return decimal.Zero, ErrUnknownCurrencyUnit
	}
	return decimal.New(a.Value, 0).Mul(mult), nil
}

// ConvertTo re-expresses the amount in another Lightning unit, keeping
// fractional precision.
func (a CurrencyAmount) ConvertTo(unit CurrencyUnit) (decimal.Decimal, error) {
	msats, err := a.Msats()
	if err != nil {
		return decimal.Zero, err
	}
	mult, ok := msatsMultipliers[unit]
	if !ok {
		return decimal.Zero, ErrUnknownCurrencyUnit
	}
	return msats.Div(mult), nil
}
