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
	"errors"
	"net/http"
)

var (
	ErrAuthExpired     = errors.New("the authentication session has expired")
	ErrNoSessionStored = errors.New("no session is stored")
	ErrTokenIsRequired = errors.New("the access token is required")
)

// Provider produces per-request credentials and reports authorization state.
// Each variant is a flat implementation of the same three operations.
type Provider interface {
	// ApplyHeaders adds the variant's authentication headers to an outgoing
	// HTTP request.
	ApplyHeaders(h http.Header)

	// WSConnectionParams returns the connection-init payload entries for the
	// subscription transport.
	WSConnectionParams() map[string]interface{}

	// IsAuthorized reports whether the provider currently holds a usable
	// credential. It never performs network I/O.
	IsAuthorized() bool
}

// StubProvider passes requests through unchanged and is never authorized.
// It is the default when no provider is supplied, so a misconfigured client
// fails closed instead of silently sending unauthenticated requests.
type StubProvider struct{}

func NewStubProvider() *StubProvider {
	return &StubProvider{}
}

func (p *StubProvider) ApplyHeaders(http.Header) {}

func (p *StubProvider) WSConnectionParams() map[string]interface{} {
	return map[string]interface{}{}
}

func (p *StubProvider) IsAuthorized() bool {
	return false
}
