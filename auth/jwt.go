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

package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go/v4"
)

// Session is the persisted JWT session state. The storage medium is the
// store's concern; the provider only requires get, set and clear.
type Session struct {
	AccessToken string    `json:"accessToken"`
	ValidUntil  time.Time `json:"validUntil"`
}

//go:generate go run github.com/golang/mock/mockgen -destination mocks/session_store_mock.go -package mocks code.luminapay.io/lumina/auth SessionStore
type SessionStore interface {
	GetSession() (Session, error)
	SaveSession(Session) error
	ClearSession() error
}

// JWTProvider holds a server-issued session token. It reports authorized
// only while the session is valid; once expired, the caller must authenticate
// again and replace the provider instance. There is no in-place refresh.
type JWTProvider struct {
	session Session
	store   SessionStore
}

// NewJWTProvider builds a provider from a freshly-issued access token. When
// the server did not report an expiry, the token's own exp claim is used;
// with neither, the session is considered already expired. The session is
// persisted through the store when one is given.
func NewJWTProvider(store SessionStore, accessToken string, validUntil time.Time) (*JWTProvider, error) {
	if len(accessToken) == 0 {
		return nil, ErrTokenIsRequired
	}

	if validUntil.IsZero() {
		expiry, err := tokenExpiry(accessToken)
		if err != nil {
			return nil, err
		}
		validUntil = expiry
	}

	session := Session{
		AccessToken: accessToken,
		ValidUntil:  validUntil,
	}

	if store != nil {
		if err := store.SaveSession(session); err != nil {
			return nil, fmt.Errorf("couldn't persist the session: %w", err)
		}
	}

	return &JWTProvider{
		session: session,
		store:   store,
	}, nil
}

// LoadJWTProvider restores a provider from a persisted session. Restoring
// an already-expired session fails with ErrAuthExpired so callers know to
// authenticate again rather than send doomed requests.
func LoadJWTProvider(store SessionStore) (*JWTProvider, error) {
	session, err := store.GetSession()
	if err != nil {
		return nil, fmt.Errorf("couldn't read the persisted session: %w", err)
	}
	if len(session.AccessToken) == 0 {
		return nil, ErrNoSessionStored
	}
	if !time.Now().Before(session.ValidUntil) {
		return nil, ErrAuthExpired
	}
	return &JWTProvider{
		session: session,
		store:   store,
	}, nil
}

func (p *JWTProvider) ApplyHeaders(h http.Header) {
	h.Set("Authorization", "Bearer "+p.session.AccessToken)
}

func (p *JWTProvider) WSConnectionParams() map[string]interface{} {
	return map[string]interface{}{
		"authorization": "Bearer " + p.session.AccessToken,
	}
}

func (p *JWTProvider) IsAuthorized() bool {
	return time.Now().Before(p.session.ValidUntil)
}

// ValidUntil exposes the session expiry so callers can decide when to
// re-authenticate.
func (p *JWTProvider) ValidUntil() time.Time {
	return p.session.ValidUntil
}

// Logout clears the persisted session. The provider is unusable afterwards.
func (p *JWTProvider) Logout() error {
	p.session = Session{}
	if p.store == nil {
		return nil
	}
	if err := p.store.ClearSession(); err != nil {
		return fmt.Errorf("couldn't clear the persisted session: %w", err)
	}
	return nil
}

// tokenExpiry reads the exp claim without verifying the token signature.
// Verification is the server's job; the client only needs the expiry to
// decide when to stop sending the token.
func tokenExpiry(accessToken string) (time.Time, error) {
	claims := &jwt.StandardClaims{}
	parser := &jwt.Parser{}
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return time.Time{}, fmt.Errorf("couldn't parse JWT token: %w", err)
	}
	if claims.ExpiresAt == nil {
		// fail closed: a token without expiry is treated as expired
		return time.Time{}, nil
	}
	return claims.ExpiresAt.Time, nil
}
