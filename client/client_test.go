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

package client_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"code.luminapay.io/lumina/auth"
	"code.luminapay.io/lumina/client"
	"code.luminapay.io/lumina/keys"
	"code.luminapay.io/lumina/objects"
	"code.luminapay.io/lumina/requester"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient(t *testing.T) {
	t.Run("Fetching the current wallet maps the payload", testFetchingCurrentWalletMapsPayload)
	t.Run("A null wallet in the response is not an error", testNullWalletInResponseIsNotAnError)
	t.Run("A response missing the wallet field is an error", testResponseMissingWalletFieldIsAnError)
	t.Run("Creating an invoice passes the amount through", testCreatingInvoicePassesAmountThrough)
	t.Run("Paying an invoice carries the signing node", testPayingInvoiceCarriesSigningNode)
	t.Run("Awaiting a payment follows the status stream", testAwaitingPaymentFollowsStatusStream)
	t.Run("Awaiting an already settled payment does not subscribe", testAwaitingSettledPaymentDoesNotSubscribe)
	t.Run("Awaiting a deployment follows the wallet status stream", testAwaitingDeploymentFollowsWalletStatusStream)
	t.Run("Logging in with a JWT installs the session provider", testLoggingInWithJWTInstallsSessionProvider)
	t.Run("Unlocking with the wrong password reports a decryption failure", testUnlockingWithWrongPasswordReportsDecryptionFailure)
	t.Run("The wallet status stream types the raw updates", testWalletStatusStreamTypesRawUpdates)
}

type fakeExecutor struct {
	cache    *keys.Cache
	provider auth.Provider

	executeFn   func(req requester.Request) (map[string]interface{}, error)
	subscribeFn func(req requester.Request) (requester.Stream, error)

	executed   []requester.Request
	subscribed []requester.Request
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{cache: keys.NewCache(nil)}
}

func (f *fakeExecutor) Execute(_ context.Context, req requester.Request) (map[string]interface{}, error) {
	f.executed = append(f.executed, req)
	return f.executeFn(req)
}

func (f *fakeExecutor) Subscribe(_ context.Context, req requester.Request) (requester.Stream, error) {
	f.subscribed = append(f.subscribed, req)
	return f.subscribeFn(req)
}

func (f *fakeExecutor) SetAuthProvider(provider auth.Provider) {
	f.provider = provider
}

func (f *fakeExecutor) KeyCache() *keys.Cache {
	return f.cache
}

func (f *fakeExecutor) Close() {}

type fakeUpdateStream struct {
	updates chan map[string]interface{}
	err     error
}

func newFakeUpdateStream() *fakeUpdateStream {
	return &fakeUpdateStream{updates: make(chan map[string]interface{}, 8)}
}

func (f *fakeUpdateStream) Updates() <-chan map[string]interface{} {
	return f.updates
}

func (f *fakeUpdateStream) Err() error {
	return f.err
}

func (f *fakeUpdateStream) Unsubscribe() {}

func payload(t *testing.T, in string) map[string]interface{} {
	t.Helper()
	out := map[string]interface{}{}
	require.NoError(t, json.Unmarshal([]byte(in), &out))
	return out
}

func testFetchingCurrentWalletMapsPayload(t *testing.T) {
	t.Parallel()
	executor := newFakeExecutor()
	executor.executeFn = func(req requester.Request) (map[string]interface{}, error) {
		return payload(t, `{
			"current_wallet": {
				"id": "wallet-1",
				"status": "READY",
				"balances": {
					"owned_balance": {"value": 42000, "unit": "MILLISATOSHI"}
				}
			}
		}`), nil
	}
	c := client.NewClientWithExecutor(nil, executor)

	wallet, err := c.CurrentWallet(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "wallet-1", wallet.ID)
	assert.Equal(t, objects.WalletStatusReady, wallet.Status)
	require.NotNil(t, wallet.Balances)
	assert.Equal(t, int64(42000), wallet.Balances.OwnedBalance.Value)
}

func testNullWalletInResponseIsNotAnError(t *testing.T) {
	t.Parallel()
	executor := newFakeExecutor()
	executor.executeFn = func(req requester.Request) (map[string]interface{}, error) {
		return payload(t, `{"current_wallet": null}`), nil
	}
	c := client.NewClientWithExecutor(nil, executor)

	// An account with no wallet yet answers null, not an error.
	wallet, err := c.CurrentWallet(context.Background())
	require.NoError(t, err)
	assert.Nil(t, wallet)

	dashboard, err := c.WalletDashboard(context.Background(), 5)
	require.NoError(t, err)
	assert.Nil(t, dashboard)
}

func testResponseMissingWalletFieldIsAnError(t *testing.T) {
	t.Parallel()
	executor := newFakeExecutor()
	executor.executeFn = func(req requester.Request) (map[string]interface{}, error) {
		return payload(t, `{}`), nil
	}
	c := client.NewClientWithExecutor(nil, executor)

	wallet, err := c.CurrentWallet(context.Background())
	require.ErrorContains(t, err, `"current_wallet"`)
	assert.Nil(t, wallet)
}

func testCreatingInvoicePassesAmountThrough(t *testing.T) {
	t.Parallel()
	executor := newFakeExecutor()
	executor.executeFn = func(req requester.Request) (map[string]interface{}, error) {
		return payload(t, `{
			"create_invoice": {
				"invoice": {
					"id": "invoice-1",
					"data": {
						"encoded_payment_request": "lnbc10u1p3unwfu...",
						"memo": "coffee"
					}
				}
			}
		}`), nil
	}
	c := client.NewClientWithExecutor(nil, executor)

	invoice, err := c.CreateInvoice(context.Background(), 1000000, "coffee")

	require.NoError(t, err)
	assert.Equal(t, "invoice-1", invoice.ID)
	require.Len(t, executor.executed, 1)
	assert.Equal(t, "CreateInvoice", executor.executed[0].Name)
	assert.Equal(t, int64(1000000), executor.executed[0].Variables["amount_msats"])
	assert.Equal(t, "coffee", executor.executed[0].Variables["memo"])
}

func testPayingInvoiceCarriesSigningNode(t *testing.T) {
	t.Parallel()
	executor := newFakeExecutor()
	executor.executeFn = func(req requester.Request) (map[string]interface{}, error) {
		return payload(t, `{
			"pay_invoice": {
				"payment": {"id": "payment-1", "status": "SUCCESS"}
			}
		}`), nil
	}
	c := client.NewClientWithExecutor(nil, executor)

	payment, err := c.PayInvoice(context.Background(), client.PayInvoiceParams{
		SigningNodeID:    "node-1",
		EncodedInvoice:   "lnbc10u1p3unwfu...",
		TimeoutSecs:      60,
		MaximumFeesMsats: 500,
	})

	require.NoError(t, err)
	assert.Equal(t, objects.PaymentStatusSuccess, payment.Status)
	require.Len(t, executor.executed, 1)
	assert.Equal(t, "node-1", executor.executed[0].SigningNodeID)
	assert.Equal(t, "lnbc10u1p3unwfu...", executor.executed[0].Variables["encoded_invoice"])
}

func testAwaitingPaymentFollowsStatusStream(t *testing.T) {
	t.Parallel()
	executor := newFakeExecutor()
	executor.executeFn = func(req requester.Request) (map[string]interface{}, error) {
		return payload(t, `{
			"pay_invoice": {
				"payment": {"id": "payment-1", "status": "PENDING"}
			}
		}`), nil
	}
	stream := newFakeUpdateStream()
	executor.subscribeFn = func(req requester.Request) (requester.Stream, error) {
		assert.Equal(t, "payment-1", req.Variables["payment_id"])
		stream.updates <- payload(t, `{"outgoing_payment": {"status": "SUCCESS"}}`)
		return stream, nil
	}
	c := client.NewClientWithExecutor(nil, executor)

	payment, err := c.PayInvoiceAndAwaitCompletion(context.Background(), client.PayInvoiceParams{
		EncodedInvoice:   "lnbc10u1p3unwfu...",
		TimeoutSecs:      60,
		MaximumFeesMsats: 500,
	})

	require.NoError(t, err)
	assert.Equal(t, objects.PaymentStatusSuccess, payment.Status)
	require.Len(t, executor.subscribed, 1)
}

func testAwaitingSettledPaymentDoesNotSubscribe(t *testing.T) {
	t.Parallel()
	executor := newFakeExecutor()
	executor.executeFn = func(req requester.Request) (map[string]interface{}, error) {
		return payload(t, `{
			"pay_invoice": {
				"payment": {"id": "payment-1", "status": "FAILED"}
			}
		}`), nil
	}
	c := client.NewClientWithExecutor(nil, executor)

	payment, err := c.PayInvoiceAndAwaitCompletion(context.Background(), client.PayInvoiceParams{
		EncodedInvoice:   "lnbc10u1p3unwfu...",
		TimeoutSecs:      60,
		MaximumFeesMsats: 500,
	})

	require.NoError(t, err)
	assert.Equal(t, objects.PaymentStatusFailed, payment.Status)
	assert.Empty(t, executor.subscribed)
}

func testAwaitingDeploymentFollowsWalletStatusStream(t *testing.T) {
	t.Parallel()
	executor := newFakeExecutor()
	executor.executeFn = func(req requester.Request) (map[string]interface{}, error) {
		return payload(t, `{
			"deploy_wallet": {
				"wallet": {"id": "wallet-1", "status": "DEPLOYING"}
			}
		}`), nil
	}
	stream := newFakeUpdateStream()
	executor.subscribeFn = func(req requester.Request) (requester.Stream, error) {
		stream.updates <- payload(t, `{"current_wallet": {"status": "DEPLOYING"}}`)
		stream.updates <- payload(t, `{"current_wallet": {"status": "DEPLOYED"}}`)
		return stream, nil
	}
	c := client.NewClientWithExecutor(nil, executor)

	wallet, err := c.DeployWalletAndAwaitDeployed(context.Background())

	require.NoError(t, err)
	assert.Equal(t, objects.WalletStatusDeployed, wallet.Status)
}

func testLoggingInWithJWTInstallsSessionProvider(t *testing.T) {
	t.Parallel()
	validUntil := time.Now().Add(time.Hour).Truncate(time.Second).UTC()
	executor := newFakeExecutor()
	executor.executeFn = func(req requester.Request) (map[string]interface{}, error) {
		assert.True(t, req.SkipAuthCheck)
		assert.Equal(t, "signed-jwt", req.Variables["jwt"])
		return map[string]interface{}{
			"login_with_jwt": map[string]interface{}{
				"access_token": "session-token",
				"valid_until":  validUntil.Format(time.RFC3339),
			},
		}, nil
	}
	c := client.NewClientWithExecutor(nil, executor)
	store := newInMemorySessionStore()

	provider, err := c.LoginWithJWT(context.Background(), "signed-jwt", store)

	require.NoError(t, err)
	assert.True(t, provider.IsAuthorized())
	assert.Equal(t, validUntil, provider.ValidUntil())
	assert.Same(t, provider, executor.provider)

	session, err := store.GetSession()
	require.NoError(t, err)
	assert.Equal(t, "session-token", session.AccessToken)
}

func testUnlockingWithWrongPasswordReportsDecryptionFailure(t *testing.T) {
	t.Parallel()
	c := client.NewClientWithExecutor(nil, newFakeExecutor())

	err := c.UnlockWalletWithPassword("node-1", "wrong", keys.EncryptedKey{
		Ciphertext: []byte("not long enough"),
		Salt:       []byte("salt"),
		Nonce:      []byte("bad nonce"),
		Iterations: 1000,
	})

	decryptionErr := &keys.DecryptionError{}
	require.ErrorAs(t, err, &decryptionErr)
	assert.Equal(t, "node-1", decryptionErr.NodeID)
	assert.False(t, c.IsWalletUnlocked("node-1"))
}

func testWalletStatusStreamTypesRawUpdates(t *testing.T) {
	t.Parallel()
	executor := newFakeExecutor()
	inner := newFakeUpdateStream()
	executor.subscribeFn = func(req requester.Request) (requester.Stream, error) {
		return inner, nil
	}
	c := client.NewClientWithExecutor(nil, executor)

	stream, err := c.SubscribeToWalletStatus(context.Background())
	require.NoError(t, err)

	inner.updates <- payload(t, `{"current_wallet": {"status": "SOMETHING_NEW"}}`)
	status := <-stream.Updates()
	assert.Equal(t, objects.WalletStatusFutureValue, status)

	close(inner.updates)
	for range stream.Updates() {
	}
	assert.NoError(t, stream.Err())
}

type inMemorySessionStore struct {
	session *auth.Session
}

func newInMemorySessionStore() *inMemorySessionStore {
	return &inMemorySessionStore{}
}

func (s *inMemorySessionStore) GetSession() (auth.Session, error) {
	if s.session == nil {
		return auth.Session{}, auth.ErrNoSessionStored
	}
	return *s.session, nil
}

func (s *inMemorySessionStore) SaveSession(session auth.Session) error {
	s.session = &session
	return nil
}

func (s *inMemorySessionStore) ClearSession() error {
	s.session = nil
	return nil
}
