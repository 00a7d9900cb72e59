// Copyright 2026 The ChainOfProduct Authors
// SPDX-License-Identifier: Apache-2.0

package primitives

import (
	"fmt"

	"golang.org/x/crypto/curve25519"
)

// X25519KeySize is the size in bytes of an X25519 public or private
// key.
const X25519KeySize = curve25519.PointSize // 32

// GenerateX25519Keypair generates a new X25519 key pair suitable for
// ephemeral or long-term Diffie-Hellman key agreement. The private key
// is clamped per RFC 7748 by curve25519.X25519 at agreement time, not
// at generation time, matching the library's convention.
func GenerateX25519Keypair() (private, public []byte, err error) {
	private, err = RandomBytes(X25519KeySize)
	if err != nil {
		return nil, nil, err
	}
	public, err = curve25519.X25519(private, curve25519.Basepoint)
	if err != nil {
		return nil, nil, fmt.Errorf("primitives: deriving X25519 public key: %w", err)
	}
	return private, public, nil
}

// X25519 performs an X25519 Diffie-Hellman key agreement, returning
// the 32-byte shared point for secret combined with public. Clamping
// of secret is applied per RFC 7748 by the underlying implementation.
func X25519(secret, public []byte) ([]byte, error) {
	if len(secret) != X25519KeySize {
		return nil, fmt.Errorf("primitives: X25519 secret must be %d bytes, got %d", X25519KeySize, len(secret))
	}
	if len(public) != X25519KeySize {
		return nil, fmt.Errorf("primitives: X25519 public key must be %d bytes, got %d", X25519KeySize, len(public))
	}
	shared, err := curve25519.X25519(secret, public)
	if err != nil {
		return nil, fmt.Errorf("primitives: X25519 agreement failed: %w", err)
	}
	return shared, nil
}

// X25519PublicFromPrivate derives the public key corresponding to a
// private X25519 key.
func X25519PublicFromPrivate(secret []byte) ([]byte, error) {
	if len(secret) != X25519KeySize {
		return nil, fmt.Errorf("primitives: X25519 secret must be %d bytes, got %d", X25519KeySize, len(secret))
	}
	public, err := curve25519.X25519(secret, curve25519.Basepoint)
	if err != nil {
		return nil, fmt.Errorf("primitives: deriving X25519 public key: %w", err)
	}
	return public, nil
}
