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

// Package scripts holds the GraphQL documents the client sends. The
// requester treats them as opaque strings; keeping them in one place makes
// the server surface the SDK depends on easy to audit.
package scripts

const CurrencyAmountFragment = `
fragment CurrencyAmountFragment on CurrencyAmount {
    value: original_value
    unit: original_unit
}
`

const InvoiceFragment = `
fragment InvoiceFragment on Invoice {
    id
    created_at
    data {
        encoded_payment_request
        payment_hash
        amount {
            ...CurrencyAmountFragment
        }
        memo
        created_at
        expires_at
    }
    amount_paid {
        ...CurrencyAmountFragment
    }
}
` + CurrencyAmountFragment

const OutgoingPaymentFragment = `
fragment OutgoingPaymentFragment on OutgoingPayment {
    id
    created_at
    resolved_at
    status
    amount {
        ...CurrencyAmountFragment
    }
    fees {
        ...CurrencyAmountFragment
    }
    payment_hash
    failure_message
}
` + CurrencyAmountFragment

const WalletFragment = `
fragment WalletFragment on Wallet {
    id
    created_at
    updated_at
    status
    third_party_identifier
    balances {
        owned_balance {
            ...CurrencyAmountFragment
        }
        available_to_send_balance {
            ...CurrencyAmountFragment
        }
        available_to_withdraw_balance {
            ...CurrencyAmountFragment
        }
    }
}
` + CurrencyAmountFragment

const CurrentWalletQuery = `
query CurrentWallet {
    current_wallet {
        ...WalletFragment
    }
}
` + WalletFragment

const WalletDashboardQuery = `
query WalletDashboard($first: Int, $after: String) {
    current_wallet {
        ...WalletFragment
        payments(first: $first, after: $after) {
            count
            page_info {
                has_next_page
                has_previous_page
                start_cursor
                end_cursor
            }
            entities {
                ...OutgoingPaymentFragment
            }
        }
    }
}
` + WalletFragment + OutgoingPaymentFragment

const CreateInvoiceMutation = `
mutation CreateInvoice($amount_msats: Long!, $memo: String) {
    create_invoice(input: { amount_msats: $amount_msats, memo: $memo }) {
        invoice {
            ...InvoiceFragment
        }
    }
}
` + InvoiceFragment

const PayInvoiceMutation = `
mutation PayInvoice(
    $encoded_invoice: String!
    $timeout_secs: Int!
    $maximum_fees_msats: Long!
    $amount_msats: Long
) {
    pay_invoice(
        input: {
            encoded_invoice: $encoded_invoice
            timeout_secs: $timeout_secs
            maximum_fees_msats: $maximum_fees_msats
            amount_msats: $amount_msats
        }
    ) {
        payment {
            ...OutgoingPaymentFragment
        }
    }
}
` + OutgoingPaymentFragment

const DeployWalletMutation = `
mutation DeployWallet {
    deploy_wallet {
        wallet {
            ...WalletFragment
        }
    }
}
` + WalletFragment

const InitializeWalletMutation = `
mutation InitializeWallet($signing_public_key: String!) {
    initialize_wallet(input: { signing_public_key: $signing_public_key }) {
        wallet {
            ...WalletFragment
        }
    }
}
` + WalletFragment

const TerminateWalletMutation = `
mutation TerminateWallet {
    terminate_wallet {
        wallet {
            ...WalletFragment
        }
    }
}
` + WalletFragment

const LoginWithJWTMutation = `
mutation LoginWithJWT($jwt: String!) {
    login_with_jwt(input: { jwt: $jwt }) {
        access_token
        valid_until
    }
}
`

const WalletStatusSubscription = `
subscription WalletStatus {
    current_wallet {
        status
    }
}
`

const PaymentStatusSubscription = `
subscription PaymentStatus($payment_id: ID!) {
    outgoing_payment(id: $payment_id) {
        status
    }
}
`
