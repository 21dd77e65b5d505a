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
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"strings"
	"sync"

	"code.luminapay.io/lumina/crypto"
)

// derLeadingByte is the first byte of any DER-encoded key (the ASN.1
// SEQUENCE tag). Key material starting with it is treated as raw DER and
// re-encoded as base64 for internal storage; anything else is treated as
// UTF-8 PEM text. Checking a single byte is the established wire behaviour
// and is preserved as-is.
const derLeadingByte = 0x30

// EncryptedKey carries the cipher parameters of a signing key that arrived
// encrypted from the server and must be unwrapped client-side.
type EncryptedKey struct {
	Ciphertext []byte
	Salt       []byte
	Nonce      []byte
	Iterations int
}

// Cache holds decrypted private signing keys, keyed by node id, in memory
// only. At most one entry exists per node id; loading a key for an
// already-cached node replaces it. Entries live for the process lifetime.
type Cache struct {
	mu       sync.RWMutex
	provider crypto.Provider
	entries  map[string]string
}

// NewCache builds a key cache delegating cryptographic primitives to the
// given provider. A nil provider selects the native backend.
func NewCache(provider crypto.Provider) *Cache {
	if provider == nil {
		provider = crypto.NewNativeProvider()
	}
	return &Cache{
		provider: provider,
		entries:  map[string]string{},
	}
}

// Load stores key material under nodeID, overwriting any prior entry.
// Malformed material is accepted here and surfaces as a KeyDecodeError on
// first signing use.
func (c *Cache) Load(nodeID string, material []byte) {
	stored := string(material)
	if len(material) > 0 && material[0] == derLeadingByte {
		stored = base64.StdEncoding.EncodeToString(material)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[nodeID] = stored
}

// Has reports whether a key is loaded for nodeID.
func (c *Cache) Has(nodeID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[nodeID]
	return ok
}

// Clear drops every cached key.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string]string{}
}

// Sign signs payload with the key loaded for nodeID. It fails with
// ErrKeyNotFound when no key is loaded, and with a KeyDecodeError when the
// loaded material cannot be decoded.
func (c *Cache) Sign(nodeID string, payload []byte) ([]byte, error) {
	c.mu.RLock()
	material, ok := c.entries[nodeID]
	c.mu.RUnlock()
	if !ok {
		return nil, ErrKeyNotFound
	}

	der, err := decodeMaterial(material)
	if err != nil {
		return nil, &KeyDecodeError{NodeID: nodeID, Err: err}
	}

	key, err := c.provider.LoadPrivateKey(der)
	if err != nil {
		return nil, &KeyDecodeError{NodeID: nodeID, Err: err}
	}

	return c.provider.Sign(key, payload)
}

// DecryptWithPassword unwraps signing-key material that arrived encrypted
// from the server. It returns the decrypted material, ready to be passed to
// Load. A wrong password fails with a DecryptionError.
func (c *Cache) DecryptWithPassword(nodeID, password string, enc EncryptedKey) ([]byte, error) {
	if len(enc.Salt) == 0 || enc.Iterations <= 0 {
		return nil, &DecryptionError{NodeID: nodeID, Err: crypto.ErrMissingKeyDerivation}
	}

	key := c.provider.DeriveKey([]byte(password), enc.Salt, enc.Iterations)
	material, err := c.provider.Decrypt(enc.Ciphertext, key, enc.Nonce)
	if err != nil {
		return nil, &DecryptionError{NodeID: nodeID, Err: err}
	}
	return material, nil
}

func decodeMaterial(material string) ([]byte, error) {
	if strings.HasPrefix(material, "-----") {
		block, _ := pem.Decode([]byte(material))
		if block == nil {
			return nil, fmt.Errorf("invalid PEM block")
		}
		return block.Bytes, nil
	}
	der, err := base64.StdEncoding.DecodeString(material)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 key material: %w", err)
	}
	return der, nil
}
