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
	"encoding/base64"
	"fmt"
	"net/http"
)

// TokenProvider authenticates with a fixed API token pair using Basic auth.
// The credential is self-contained, so the provider is always authorized
// without a network round-trip.
type TokenProvider struct {
	tokenID string
	secret  string
}

func NewTokenProvider(tokenID, secret string) *TokenProvider {
	return &TokenProvider{
		tokenID: tokenID,
		secret:  secret,
	}
}

func (p *TokenProvider) ApplyHeaders(h http.Header) {
	h.Set("Authorization", "Basic "+p.encoded())
}

func (p *TokenProvider) WSConnectionParams() map[string]interface{} {
	return map[string]interface{}{
		"authorization": "Basic " + p.encoded(),
	}
}

func (p *TokenProvider) IsAuthorized() bool {
	return true
}

func (p *TokenProvider) encoded() string {
	return base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("%s:%s", p.tokenID, p.secret)))
}
