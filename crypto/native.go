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
	"crypto"
	"crypto/aes"
	"crypto/cipher"
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const derivedKeyLen = 32

// NativeProvider implements Provider on top of the Go standard library:
// RSA-PSS or ECDSA signatures, PBKDF2-SHA256 key derivation and AES-256-GCM
// decryption.
type NativeProvider struct{}

func NewNativeProvider() *NativeProvider {
	return &NativeProvider{}
}

func (p *NativeProvider) Name() string {
	return "native"
}

func (p *NativeProvider) LoadPrivateKey(der []byte) (PrivateKey, error) {
	if key, err := x509.ParsePKCS8PrivateKey(der); err == nil {
		switch k := key.(type) {
		case *rsa.PrivateKey, *ecdsa.PrivateKey:
			return k, nil
		default:
			return nil, ErrUnsupportedKeyType
		}
	}
	if key, err := x509.ParsePKCS1PrivateKey(der); err == nil {
		return key, nil
	}
	if key, err := x509.ParseECPrivateKey(der); err == nil {
		return key, nil
	}
	return nil, ErrCouldNotDecodeKey
}

func (p *NativeProvider) Sign(key PrivateKey, payload []byte) ([]byte, error) {
	digest := sha256.Sum256(payload)
	switch k := key.(type) {
	case *rsa.PrivateKey:
		sig, err := rsa.SignPSS(rand.Reader, k, crypto.SHA256, digest[:], nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSignatureGeneration, err)
		}
		return sig, nil
	case *ecdsa.PrivateKey:
		sig, err := ecdsa.SignASN1(rand.Reader, k, digest[:])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSignatureGeneration, err)
		}
		return sig, nil
	default:
		return nil, ErrUnsupportedKeyType
	}
}

func (p *NativeProvider) DeriveKey(password, salt []byte, iterations int) []byte {
	return pbkdf2.Key(password, salt, iterations, derivedKeyLen, sha256.New)
}

func (p *NativeProvider) Decrypt(ciphertext, key, nonce []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("couldn't initialise the cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("couldn't initialise GCM: %w", err)
	}
	if len(nonce) != aead.NonceSize() {
		return nil, ErrCiphertextTooShort
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		// GCM authentication failure, which is what a wrong password
		// looks like at this layer.
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}
