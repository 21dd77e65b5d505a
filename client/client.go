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

// Package client is the composition root of the SDK. It wires the GraphQL
// requester, the signing-key cache and the auth providers behind a facade of
// wallet operations, so applications never assemble the lower layers by
// hand.
package client

import (
	"context"
	"fmt"
	"time"

	"code.luminapay.io/lumina/auth"
	"code.luminapay.io/lumina/await"
	"code.luminapay.io/lumina/keys"
	"code.luminapay.io/lumina/objects"
	"code.luminapay.io/lumina/requester"
	"code.luminapay.io/lumina/scripts"

	"go.uber.org/zap"
)

const (
	defaultAwaitTimeout   = time.Minute
	defaultExecuteRetries = 3
)

// Executor is the transport surface the client drives. It is satisfied by
// requester.Requester.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/executor_mock.go -package mocks code.luminapay.io/lumina/client Executor
type Executor interface {
	Execute(ctx context.Context, req requester.Request) (map[string]interface{}, error)
	Subscribe(ctx context.Context, req requester.Request) (requester.Stream, error)
	SetAuthProvider(provider auth.Provider)
	KeyCache() *keys.Cache
	Close()
}

type Client struct {
	log          *zap.Logger
	executor     Executor
	retrier      *requester.Retrier
	awaitTimeout time.Duration
}

// NewClient builds a client against cfg's endpoints. It starts with the
// fail-closed stub auth provider; callers authenticate through LoginWithJWT
// or SetAuthProvider before issuing operations.
func NewClient(log *zap.Logger, cfg requester.Config) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	c := NewClientWithExecutor(log, requester.New(log, cfg, nil, nil))
	c.retrier = requester.NewRetrier(cfg.Retries)
	return c
}

// NewClientWithExecutor builds a client on a caller-supplied transport.
func NewClientWithExecutor(log *zap.Logger, executor Executor) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		log:          log,
		executor:     executor,
		retrier:      requester.NewRetrier(defaultExecuteRetries),
		awaitTimeout: defaultAwaitTimeout,
	}
}

// SetAuthProvider swaps the credential used for subsequent operations.
func (c *Client) SetAuthProvider(provider auth.Provider) {
	c.executor.SetAuthProvider(provider)
}

// Close tears down the shared subscription transport. In-flight
// subscriptions fail with the transport error.
func (c *Client) Close() {
	c.executor.Close()
}

// LoginWithJWT exchanges a signed JWT for a platform session, persists the
// session in store and installs the resulting provider on the transport.
func (c *Client) LoginWithJWT(ctx context.Context, token string, store auth.SessionStore) (*auth.JWTProvider, error) {
	data, err := c.executor.Execute(ctx, requester.Request{
		Name:          "LoginWithJWT",
		Query:         scripts.LoginWithJWTMutation,
		Variables:     map[string]interface{}{"jwt": token},
		SkipAuthCheck: true,
	})
	if err != nil {
		return nil, fmt.Errorf("could not login with JWT: %w", err)
	}

	payload, err := objectPayload(data, "login_with_jwt")
	if err != nil {
		return nil, err
	}

	accessToken, _ := payload["access_token"].(string)
	if accessToken == "" {
		return nil, fmt.Errorf("login response did not carry an access token")
	}

	validUntil := time.Time{}
	if raw, ok := payload["valid_until"].(string); ok {
		if validUntil, err = time.Parse(time.RFC3339, raw); err != nil {
			return nil, fmt.Errorf("could not parse the session expiry %q: %w", raw, err)
		}
	}

	provider, err := auth.NewJWTProvider(store, accessToken, validUntil)
	if err != nil {
		return nil, err
	}
	c.executor.SetAuthProvider(provider)
	return provider, nil
}

// UnlockWallet loads signing-key material for nodeID. Raw DER, PEM and
// base64-encoded DER are all accepted.
func (c *Client) UnlockWallet(nodeID string, material []byte) {
	c.executor.KeyCache().Load(nodeID, material)
}

// UnlockWalletWithPassword decrypts the password-protected key material the
// platform returned at wallet initialization, then loads it. A wrong
// password surfaces as a keys.DecryptionError so callers can re-prompt.
func (c *Client) UnlockWalletWithPassword(nodeID, password string, enc keys.EncryptedKey) error {
	material, err := c.executor.KeyCache().DecryptWithPassword(nodeID, password, enc)
	if err != nil {
		return err
	}
	c.executor.KeyCache().Load(nodeID, material)
	return nil
}

// IsWalletUnlocked reports whether a signing key is loaded for nodeID.
func (c *Client) IsWalletUnlocked(nodeID string) bool {
	return c.executor.KeyCache().Has(nodeID)
}

// LockWallet drops every loaded signing key.
func (c *Client) LockWallet() {
	c.executor.KeyCache().Clear()
}

// CurrentWallet fetches the wallet tied to the active session.
func (c *Client) CurrentWallet(ctx context.Context) (*objects.Wallet, error) {
	data, err := c.retrier.Execute(ctx, func() (map[string]interface{}, error) {
		return c.executor.Execute(ctx, requester.Request{
			Name:  "CurrentWallet",
			Query: scripts.CurrentWalletQuery,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("could not fetch the current wallet: %w", err)
	}
	return walletPayload(data, "current_wallet")
}

// Dashboard bundles the wallet and its most recent payments in a single
// round trip.
type Dashboard struct {
	Wallet   *objects.Wallet
	Payments *objects.WalletToPaymentsConnection
}

// WalletDashboard fetches the current wallet together with its payments
// page. A non-positive numPayments falls back to the server default.
func (c *Client) WalletDashboard(ctx context.Context, numPayments int) (*Dashboard, error) {
	variables := map[string]interface{}{}
	if numPayments > 0 {
		variables["first"] = numPayments
	}
	data, err := c.retrier.Execute(ctx, func() (map[string]interface{}, error) {
		return c.executor.Execute(ctx, requester.Request{
			Name:      "WalletDashboard",
			Query:     scripts.WalletDashboardQuery,
			Variables: variables,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("could not fetch the wallet dashboard: %w", err)
	}

	rawWallet, err := objectPayload(data, "current_wallet")
	if err != nil || rawWallet == nil {
		return nil, err
	}
	wallet, err := objects.WalletFromJSON(rawWallet)
	if err != nil {
		return nil, err
	}

	dashboard := &Dashboard{Wallet: wallet}
	if rawPayments, ok := rawWallet["payments"].(map[string]interface{}); ok {
		if dashboard.Payments, err = objects.WalletToPaymentsConnectionFromJSON(rawPayments); err != nil {
			return nil, err
		}
	}
	return dashboard, nil
}

// DeployWallet asks the platform to deploy the Lightning node backing the
// current wallet. Deployment is asynchronous; the returned wallet carries
// the status at the time of the call.
func (c *Client) DeployWallet(ctx context.Context) (*objects.Wallet, error) {
	data, err := c.executor.Execute(ctx, requester.Request{
		Name:  "DeployWallet",
		Query: scripts.DeployWalletMutation,
	})
	if err != nil {
		return nil, fmt.Errorf("could not deploy the wallet: %w", err)
	}
	payload, err := objectPayload(data, "deploy_wallet")
	if err != nil || payload == nil {
		return nil, err
	}
	return walletPayload(payload, "wallet")
}

// DeployWalletAndAwaitDeployed deploys the wallet and blocks until the
// status settles on DEPLOYED or FAILED.
func (c *Client) DeployWalletAndAwaitDeployed(ctx context.Context) (*objects.Wallet, error) {
	wallet, err := c.DeployWallet(ctx)
	if err != nil || wallet == nil {
		return nil, err
	}
	return c.awaitWalletStatus(ctx, wallet, []objects.WalletStatus{
		objects.WalletStatusDeployed,
		objects.WalletStatusFailed,
	})
}

// InitializeWallet provisions the deployed node with the wallet's signing
// public key. Initialization is asynchronous.
func (c *Client) InitializeWallet(ctx context.Context, signingPublicKey string) (*objects.Wallet, error) {
	data, err := c.executor.Execute(ctx, requester.Request{
		Name:  "InitializeWallet",
		Query: scripts.InitializeWalletMutation,
		Variables: map[string]interface{}{
			"signing_public_key": signingPublicKey,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("could not initialize the wallet: %w", err)
	}
	payload, err := objectPayload(data, "initialize_wallet")
	if err != nil || payload == nil {
		return nil, err
	}
	return walletPayload(payload, "wallet")
}

// InitializeWalletAndAwaitReady initializes the wallet and blocks until the
// status settles on READY or FAILED.
func (c *Client) InitializeWalletAndAwaitReady(ctx context.Context, signingPublicKey string) (*objects.Wallet, error) {
	wallet, err := c.InitializeWallet(ctx, signingPublicKey)
	if err != nil || wallet == nil {
		return nil, err
	}
	return c.awaitWalletStatus(ctx, wallet, []objects.WalletStatus{
		objects.WalletStatusReady,
		objects.WalletStatusFailed,
	})
}

// TerminateWallet irreversibly terminates the current wallet.
func (c *Client) TerminateWallet(ctx context.Context) (*objects.Wallet, error) {
	data, err := c.executor.Execute(ctx, requester.Request{
		Name:  "TerminateWallet",
		Query: scripts.TerminateWalletMutation,
	})
	if err != nil {
		return nil, fmt.Errorf("could not terminate the wallet: %w", err)
	}
	payload, err := objectPayload(data, "terminate_wallet")
	if err != nil || payload == nil {
		return nil, err
	}
	return walletPayload(payload, "wallet")
}

// CreateInvoice creates a BOLT11 invoice on the current wallet. A zero
// amount produces an invoice the payer picks the amount for.
func (c *Client) CreateInvoice(ctx context.Context, amountMsats int64, memo string) (*objects.Invoice, error) {
	variables := map[string]interface{}{
		"amount_msats": amountMsats,
	}
	if memo != "" {
		variables["memo"] = memo
	}
	data, err := c.executor.Execute(ctx, requester.Request{
		Name:      "CreateInvoice",
		Query:     scripts.CreateInvoiceMutation,
		Variables: variables,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create the invoice: %w", err)
	}
	payload, err := objectPayload(data, "create_invoice")
	if err != nil || payload == nil {
		return nil, err
	}
	raw, err := objectPayload(payload, "invoice")
	if err != nil || raw == nil {
		return nil, err
	}
	return objects.InvoiceFromJSON(raw)
}

// PayInvoiceParams parameterizes an outgoing payment. AmountMsats is only
// set when paying an amountless invoice.
type PayInvoiceParams struct {
	SigningNodeID    string
	EncodedInvoice   string
	TimeoutSecs      int
	MaximumFeesMsats int64
	AmountMsats      *int64
}

// PayInvoice pays a BOLT11 invoice. The request moves funds and is signed
// with the key loaded for SigningNodeID; it fails before any network I/O
// when the wallet is locked.
func (c *Client) PayInvoice(ctx context.Context, params PayInvoiceParams) (*objects.OutgoingPayment, error) {
	variables := map[string]interface{}{
		"encoded_invoice":    params.EncodedInvoice,
		"timeout_secs":       params.TimeoutSecs,
		"maximum_fees_msats": params.MaximumFeesMsats,
	}
	if params.AmountMsats != nil {
		variables["amount_msats"] = *params.AmountMsats
	}
	data, err := c.executor.Execute(ctx, requester.Request{
		Name:          "PayInvoice",
		Query:         scripts.PayInvoiceMutation,
		Variables:     variables,
		SigningNodeID: params.SigningNodeID,
	})
	if err != nil {
		return nil, fmt.Errorf("could not pay the invoice: %w", err)
	}
	payload, err := objectPayload(data, "pay_invoice")
	if err != nil || payload == nil {
		return nil, err
	}
	raw, err := objectPayload(payload, "payment")
	if err != nil || raw == nil {
		return nil, err
	}
	return objects.OutgoingPaymentFromJSON(raw)
}

// PayInvoiceAndAwaitCompletion pays an invoice and blocks until the payment
// settles on SUCCESS, FAILED or CANCELLED.
func (c *Client) PayInvoiceAndAwaitCompletion(ctx context.Context, params PayInvoiceParams) (*objects.OutgoingPayment, error) {
	payment, err := c.PayInvoice(ctx, params)
	if err != nil || payment == nil {
		return nil, err
	}

	status, err := await.WaitForTerminal(ctx, payment.Status, objects.PaymentTerminalStatuses(),
		func(ctx context.Context) (await.Stream[objects.PaymentStatus], error) {
			return c.subscribeToPaymentStatus(ctx, payment.ID)
		},
		c.awaitTimeout,
	)
	if err != nil {
		return nil, err
	}
	payment.Status = status
	return payment, nil
}

// SubscribeToWalletStatus streams status transitions of the current wallet
// until unsubscribed or the transport drops.
func (c *Client) SubscribeToWalletStatus(ctx context.Context) (await.Stream[objects.WalletStatus], error) {
	inner, err := c.executor.Subscribe(ctx, requester.Request{
		Name:  "WalletStatus",
		Query: scripts.WalletStatusSubscription,
	})
	if err != nil {
		return nil, fmt.Errorf("could not subscribe to the wallet status: %w", err)
	}
	return newStatusStream(inner, extractWalletStatus), nil
}

func (c *Client) subscribeToPaymentStatus(ctx context.Context, paymentID string) (await.Stream[objects.PaymentStatus], error) {
	inner, err := c.executor.Subscribe(ctx, requester.Request{
		Name:  "PaymentStatus",
		Query: scripts.PaymentStatusSubscription,
		Variables: map[string]interface{}{
			"payment_id": paymentID,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("could not subscribe to the payment status: %w", err)
	}
	return newStatusStream(inner, extractPaymentStatus), nil
}

func (c *Client) awaitWalletStatus(ctx context.Context, wallet *objects.Wallet, terminal []objects.WalletStatus) (*objects.Wallet, error) {
	status, err := await.WaitForTerminal(ctx, wallet.Status, terminal,
		func(ctx context.Context) (await.Stream[objects.WalletStatus], error) {
			return c.SubscribeToWalletStatus(ctx)
		},
		c.awaitTimeout,
	)
	if err != nil {
		return nil, err
	}
	wallet.Status = status
	return wallet, nil
}

func extractWalletStatus(update map[string]interface{}) (objects.WalletStatus, bool) {
	wallet, ok := update["current_wallet"].(map[string]interface{})
	if !ok {
		return "", false
	}
	status, ok := wallet["status"].(string)
	if !ok {
		return "", false
	}
	return objects.ParseWalletStatus(status), true
}

func extractPaymentStatus(update map[string]interface{}) (objects.PaymentStatus, bool) {
	payment, ok := update["outgoing_payment"].(map[string]interface{})
	if !ok {
		return "", false
	}
	status, ok := payment["status"].(string)
	if !ok {
		return "", false
	}
	return objects.ParsePaymentStatus(status), true
}

// objectPayload extracts the named object from a response. A field that is
// present but null yields a nil payload with no error: the platform answers
// null when there is no such object, which is not a failure.
func objectPayload(data map[string]interface{}, field string) (map[string]interface{}, error) {
	raw, ok := data[field]
	if !ok {
		return nil, fmt.Errorf("the response did not carry the %q object", field)
	}
	if raw == nil {
		return nil, nil
	}
	payload, ok := raw.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("the %q field is not an object", field)
	}
	return payload, nil
}

func walletPayload(data map[string]interface{}, field string) (*objects.Wallet, error) {
	raw, err := objectPayload(data, field)
	if err != nil || raw == nil {
		return nil, err
	}
	return objects.WalletFromJSON(raw)
}
