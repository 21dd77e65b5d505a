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
	"errors"
	"net/http"
	"testing"
	"time"

	"code.luminapay.io/lumina/auth"
	"code.luminapay.io/lumina/auth/mocks"

	"github.com/dgrijalva/jwt-go/v4"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTProvider(t *testing.T) {
	t.Run("A live session is authorized and carries a Bearer token", testLiveSessionIsAuthorized)
	t.Run("An expired session is not authorized", testExpiredSessionIsNotAuthorized)
	t.Run("Expiry falls back to the token exp claim", testExpiryFallsBackToExpClaim)
	t.Run("A token without expiry fails closed", testTokenWithoutExpiryFailsClosed)
	t.Run("The session is persisted and restorable", testSessionIsPersistedAndRestorable)
	t.Run("Restoring an expired session fails", testRestoringExpiredSessionFails)
	t.Run("Logging out clears the persisted session", testLoggingOutClearsPersistedSession)
	t.Run("A failing store blocks session creation", testFailingStoreBlocksSessionCreation)
	t.Run("An empty token is rejected", testEmptyTokenIsRejected)
}

type inMemorySessionStore struct {
	session auth.Session
	saved   bool
}

func (s *inMemorySessionStore) GetSession() (auth.Session, error) {
	return s.session, nil
}

func (s *inMemorySessionStore) SaveSession(session auth.Session) error {
	s.session = session
	s.saved = true
	return nil
}

func (s *inMemorySessionStore) ClearSession() error {
	s.session = auth.Session{}
	return nil
}

func testLiveSessionIsAuthorized(t *testing.T) {
	t.Parallel()
	provider, err := auth.NewJWTProvider(nil, "some-access-token", time.Now().Add(time.Hour))
	require.NoError(t, err)

	h := http.Header{}
	provider.ApplyHeaders(h)

	assert.True(t, provider.IsAuthorized())
	assert.Equal(t, "Bearer some-access-token", h.Get("Authorization"))
	assert.Equal(t, "Bearer some-access-token", provider.WSConnectionParams()["authorization"])
}

func testExpiredSessionIsNotAuthorized(t *testing.T) {
	t.Parallel()
	provider, err := auth.NewJWTProvider(nil, "some-access-token", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	assert.False(t, provider.IsAuthorized())
}

func testExpiryFallsBackToExpClaim(t *testing.T) {
	t.Parallel()
	expiry := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	token := signedTokenForTest(t, expiry)

	provider, err := auth.NewJWTProvider(nil, token, time.Time{})
	require.NoError(t, err)

	assert.True(t, provider.IsAuthorized())
	assert.WithinDuration(t, expiry, provider.ValidUntil(), time.Second)
}

func testTokenWithoutExpiryFailsClosed(t *testing.T) {
	t.Parallel()
	token := signedTokenForTest(t, time.Time{})

	provider, err := auth.NewJWTProvider(nil, token, time.Time{})
	require.NoError(t, err)

	assert.False(t, provider.IsAuthorized())
}

func testSessionIsPersistedAndRestorable(t *testing.T) {
	t.Parallel()
	store := &inMemorySessionStore{}

	_, err := auth.NewJWTProvider(store, "some-access-token", time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.True(t, store.saved)

	restored, err := auth.LoadJWTProvider(store)
	require.NoError(t, err)
	assert.True(t, restored.IsAuthorized())
}

func testRestoringExpiredSessionFails(t *testing.T) {
	t.Parallel()
	store := &inMemorySessionStore{
		session: auth.Session{
			AccessToken: "some-access-token",
			ValidUntil:  time.Now().Add(-time.Minute),
		},
	}

	_, err := auth.LoadJWTProvider(store)

	assert.ErrorIs(t, err, auth.ErrAuthExpired)
}

func testLoggingOutClearsPersistedSession(t *testing.T) {
	t.Parallel()
	store := &inMemorySessionStore{}

	provider, err := auth.NewJWTProvider(store, "some-access-token", time.Now().Add(time.Hour))
	require.NoError(t, err)

	require.NoError(t, provider.Logout())
	assert.False(t, provider.IsAuthorized())

	_, err = auth.LoadJWTProvider(store)
	assert.True(t, errors.Is(err, auth.ErrNoSessionStored))
}

func testFailingStoreBlocksSessionCreation(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	store := mocks.NewMockSessionStore(ctrl)
	store.EXPECT().SaveSession(gomock.Any()).Return(errors.New("disk full"))

	provider, err := auth.NewJWTProvider(store, "some-access-token", time.Now().Add(time.Hour))

	require.ErrorContains(t, err, "disk full")
	assert.Nil(t, provider)
}

func testEmptyTokenIsRejected(t *testing.T) {
	t.Parallel()
	provider, err := auth.NewJWTProvider(nil, "", time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, auth.ErrTokenIsRequired)
	assert.Nil(t, provider)
}

func signedTokenForTest(t *testing.T, expiry time.Time) string {
	t.Helper()
	claims := &jwt.StandardClaims{}
	if !expiry.IsZero() {
		claims.ExpiresAt = jwt.At(expiry)
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}
