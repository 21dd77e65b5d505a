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

package crypto

import (
	"errors"
)

var (
	ErrUnsupportedKeyType   = errors.New("unsupported private key type")
	ErrCouldNotDecodeKey    = errors.New("couldn't decode the private key material")
	ErrCiphertextTooShort   = errors.New("the ciphertext is too short")
	ErrDecryptionFailed     = errors.New("decryption failed")
	ErrSignatureGeneration  = errors.New("couldn't generate the signature")
	ErrMissingKeyDerivation = errors.New("missing key derivation parameters")
)

// PrivateKey is an opaque handle on a decoded private signing key. Its
// concrete type is owned by the Provider that produced it; callers never
// inspect it.
type PrivateKey interface{}

// Provider is the capability every host environment supplies to perform the
// private-key primitives the SDK needs. Nothing above the key cache may
// assume a concrete backend.
type Provider interface {
	// Name returns the identifier of the backend, e.g. "native".
	Name() string

	// LoadPrivateKey decodes DER-encoded private key material into an opaque
	// handle usable with Sign.
	LoadPrivateKey(der []byte) (PrivateKey, error)

	// Sign produces an asymmetric signature over payload with the given key.
	Sign(key PrivateKey, payload []byte) ([]byte, error)

	// DeriveKey stretches a password into a symmetric key.
	DeriveKey(password, salt []byte, iterations int) []byte

	// Decrypt opens a ciphertext with a derived symmetric key and nonce.
	Decrypt(ciphertext, key, nonce []byte) ([]byte, error)
}
