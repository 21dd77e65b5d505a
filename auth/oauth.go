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
	"net/http"
)

// DelegatedFlow is the platform-specific OAuth flow (authorization-code or
// PKCE) an OAuthProvider defers to. The flow owns token acquisition and
// renewal; the provider only consumes its current state.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/delegated_flow_mock.go -package mocks code.luminapay.io/lumina/auth DelegatedFlow
type DelegatedFlow interface {
	// AccessToken returns the delegated token currently held, if any.
	AccessToken() (string, error)

	// HasValidToken reports whether a usable delegated token is held.
	HasValidToken() bool
}

// OAuthProvider wraps an external delegated-authorization flow.
type OAuthProvider struct {
	flow DelegatedFlow
}

func NewOAuthProvider(flow DelegatedFlow) *OAuthProvider {
	return &OAuthProvider{
		flow: flow,
	}
}

func (p *OAuthProvider) ApplyHeaders(h http.Header) {
	token, err := p.flow.AccessToken()
	if err != nil || len(token) == 0 {
		return
	}
	h.Set("Authorization", "Bearer "+token)
}

func (p *OAuthProvider) WSConnectionParams() map[string]interface{} {
	token, err := p.flow.AccessToken()
	if err != nil || len(token) == 0 {
		return map[string]interface{}{}
	}
	return map[string]interface{}{
		"authorization": "Bearer " + token,
	}
}

// IsAuthorized reports whether the flow can actually produce a token right
// now. A flow claiming validity while failing retrieval stays unauthorized,
// so the pre-network auth check fires instead of sending a bare request.
func (p *OAuthProvider) IsAuthorized() bool {
	if !p.flow.HasValidToken() {
		return false
	}
	token, err := p.flow.AccessToken()
	return err == nil && len(token) != 0
}
