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

package requester

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrAuthRequired        = errors.New("authentication is required for this request")
	ErrSubscriptionsClosed = errors.New("the subscription transport has been closed")
	ErrConnectionNotAcked  = errors.New("the server did not acknowledge the connection")
)

// NetworkError reports a transport failure or a non-2xx HTTP response.
// Requests failing this way are never retried automatically.
type NetworkError struct {
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("network error: %v", e.Err)
	}
	return fmt.Sprintf("network error: unexpected HTTP status %d", e.StatusCode)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// GraphQLError carries the server's error messages from a GraphQL-level
// error payload.
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	return fmt.Sprintf("the server returned errors: %s", strings.Join(e.Messages, "; "))
}
