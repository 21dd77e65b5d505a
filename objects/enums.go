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

// The server may add enum members without a client release. Every enum maps
// unknown wire values to its FUTURE_VALUE sentinel instead of failing.
const futureValue = "FUTURE_VALUE"

type PaymentStatus string

const (
	PaymentStatusPending     PaymentStatus = "PENDING"
	PaymentStatusSuccess     PaymentStatus = "SUCCESS"
	PaymentStatusFailed      PaymentStatus = "FAILED"
	PaymentStatusCancelled   PaymentStatus = "CANCELLED"
	PaymentStatusFutureValue PaymentStatus = futureValue
)

// PaymentTerminalStatuses is the completion set used when awaiting a
// payment: after any of these, no further transition is expected.
func PaymentTerminalStatuses() []PaymentStatus {
	return []PaymentStatus{PaymentStatusSuccess, PaymentStatusFailed, PaymentStatusCancelled}
}

type WalletStatus string

const (
	WalletStatusNotSetup     WalletStatus = "NOT_SETUP"
	WalletStatusDeploying    WalletStatus = "DEPLOYING"
	WalletStatusDeployed     WalletStatus = "DEPLOYED"
	WalletStatusInitializing WalletStatus = "INITIALIZING"
	WalletStatusReady        WalletStatus = "READY"
	WalletStatusFailed       WalletStatus = "FAILED"
	WalletStatusTerminating  WalletStatus = "TERMINATING"
	WalletStatusTerminated   WalletStatus = "TERMINATED"
	WalletStatusFutureValue  WalletStatus = futureValue
)

type TransactionStatus string

const (
	TransactionStatusPending     TransactionStatus = "PENDING"
	TransactionStatusSuccess     TransactionStatus = "SUCCESS"
	TransactionStatusFailed      TransactionStatus = "FAILED"
	TransactionStatusFutureValue TransactionStatus = futureValue
)

type CurrencyUnit string

const (
	CurrencyUnitBitcoin      CurrencyUnit = "BITCOIN"
	CurrencyUnitSatoshi      CurrencyUnit = "SATOSHI"
	CurrencyUnitMillisatoshi CurrencyUnit = "MILLISATOSHI"
	CurrencyUnitUSD          CurrencyUnit = "USD"
	CurrencyUnitFutureValue  CurrencyUnit = futureValue
)

var (
	knownPaymentStatuses = map[string]struct{}{
		string(PaymentStatusPending):   {},
		string(PaymentStatusSuccess):   {},
		string(PaymentStatusFailed):    {},
		string(PaymentStatusCancelled): {},
	}
	knownWalletStatuses = map[string]struct{}{
		string(WalletStatusNotSetup):     {},
		string(WalletStatusDeploying):    {},
		string(WalletStatusDeployed):     {},
		string(WalletStatusInitializing): {},
		string(WalletStatusReady):        {},
		string(WalletStatusFailed):       {},
		string(WalletStatusTerminating):  {},
		string(WalletStatusTerminated):   {},
	}
	knownTransactionStatuses = map[string]struct{}{
		string(TransactionStatusPending): {},
		string(TransactionStatusSuccess): {},
		string(TransactionStatusFailed):  {},
	}
	knownCurrencyUnits = map[string]struct{}{
		string(CurrencyUnitBitcoin):      {},
		string(CurrencyUnitSatoshi):      {},
		string(CurrencyUnitMillisatoshi): {},
		string(CurrencyUnitUSD):          {},
	}
)

func ParsePaymentStatus(s string) PaymentStatus {
	if _, ok := knownPaymentStatuses[s]; ok {
		return PaymentStatus(s)
	}
	return PaymentStatusFutureValue
}

func ParseWalletStatus(s string) WalletStatus {
	if _, ok := knownWalletStatuses[s]; ok {
		return WalletStatus(s)
	}
	return WalletStatusFutureValue
}

func ParseTransactionStatus(s string) TransactionStatus {
	if _, ok := knownTransactionStatuses[s]; ok {
		return TransactionStatus(s)
	}
	return TransactionStatusFutureValue
}

func ParseCurrencyUnit(s string) CurrencyUnit {
	if _, ok := knownCurrencyUnits[s]; ok {
		return CurrencyUnit(s)
	}
	return CurrencyUnitFutureValue
}
