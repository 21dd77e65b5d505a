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

package auth_test

import (
	"encoding/base64"
	"errors"
	"net/http"
	"testing"

	"code.luminapay.io/lumina/auth"

	"github.com/stretchr/testify/assert"
)

func TestProviders(t *testing.T) {
	t.Run("Stub provider is never authorized and adds nothing", testStubProviderIsNeverAuthorized)
	t.Run("Token provider carries Basic auth and is always authorized", testTokenProviderCarriesBasicAuth)
	t.Run("OAuth provider reflects the flow state", testOAuthProviderReflectsFlowState)
	t.Run("OAuth provider with a failing token retrieval is not authorized", testFailingTokenRetrievalIsNotAuthorized)
}

func testStubProviderIsNeverAuthorized(t *testing.T) {
	t.Parallel()
	provider := auth.NewStubProvider()

	h := http.Header{}
	provider.ApplyHeaders(h)

	assert.False(t, provider.IsAuthorized())
	assert.Empty(t, h)
	assert.Empty(t, provider.WSConnectionParams())
}

func testTokenProviderCarriesBasicAuth(t *testing.T) {
	t.Parallel()
	provider := auth.NewTokenProvider("token-id", "token-secret")

	h := http.Header{}
	provider.ApplyHeaders(h)

	expected := "Basic " + base64.StdEncoding.EncodeToString([]byte("token-id:token-secret"))
	assert.True(t, provider.IsAuthorized())
	assert.Equal(t, expected, h.Get("Authorization"))
	assert.Equal(t, expected, provider.WSConnectionParams()["authorization"])
}

type fakeFlow struct {
	token string
	valid bool
	err   error
}

func (f *fakeFlow) AccessToken() (string, error) {
	return f.token, f.err
}

func (f *fakeFlow) HasValidToken() bool {
	return f.valid
}

func testOAuthProviderReflectsFlowState(t *testing.T) {
	t.Parallel()

	authorized := auth.NewOAuthProvider(&fakeFlow{token: "delegated-token", valid: true})
	h := http.Header{}
	authorized.ApplyHeaders(h)
	assert.True(t, authorized.IsAuthorized())
	assert.Equal(t, "Bearer delegated-token", h.Get("Authorization"))

	unauthorized := auth.NewOAuthProvider(&fakeFlow{valid: false})
	h = http.Header{}
	unauthorized.ApplyHeaders(h)
	assert.False(t, unauthorized.IsAuthorized())
	assert.Empty(t, h)
}

func testFailingTokenRetrievalIsNotAuthorized(t *testing.T) {
	t.Parallel()

	// The flow claims validity but cannot produce the token. The provider
	// must stay unauthorized so no request goes out without a credential.
	provider := auth.NewOAuthProvider(&fakeFlow{valid: true, err: errors.New("token endpoint unreachable")})

	h := http.Header{}
	provider.ApplyHeaders(h)

	assert.False(t, provider.IsAuthorized())
	assert.Empty(t, h)
	assert.Empty(t, provider.WSConnectionParams())
}
