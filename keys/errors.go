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

package keys

import (
	"errors"
	"fmt"
)

var ErrKeyNotFound = errors.New("no signing key is loaded for this node")

// KeyDecodeError reports key material that could not be decoded into a
// usable private key. It surfaces on first signing use, not at load time.
type KeyDecodeError struct {
	NodeID string
	Err    error
}

func (e *KeyDecodeError) Error() string {
	return fmt.Sprintf("couldn't decode the signing key for node %s: %v", e.NodeID, e.Err)
}

func (e *KeyDecodeError) Unwrap() error {
	return e.Err
}

// DecryptionError reports a failed password-based key unwrap. It is kept
// distinct from every other error kind so a UI can re-prompt for the
// password, and only for the password.
type DecryptionError struct {
	NodeID string
	Err    error
}

func (e *DecryptionError) Error() string {
	return fmt.Sprintf("couldn't decrypt the signing key for node %s: %v", e.NodeID, e.Err)
}

func (e *DecryptionError) Unwrap() error {
	return e.Err
}
