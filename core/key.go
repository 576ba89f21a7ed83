// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package core

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"io"
)

// errors
var (
	ErrInvalidKeySize = errors.New("invalid key size")
	ErrInvalidSig     = errors.New("invalid signature")
)

// PublicKey type
type PublicKey struct {
	key    ed25519.PublicKey
	keyStr string
}

// NewPublicKey creates PublicKey from bytes
func NewPublicKey(b []byte) (*PublicKey, error) {
	if len(b) != ed25519.PublicKeySize {
		return nil, ErrInvalidKeySize
	}
	return &PublicKey{
		key:    b,
		keyStr: toBase64(b),
	}, nil
}

// Equal checks whether pub and x has the same value
func (pub *PublicKey) Equal(x *PublicKey) bool {
	return pub.key.Equal(x.key)
}

// Bytes return raw bytes
func (pub *PublicKey) Bytes() []byte {
	return pub.key
}

// String returns base64 encoded key, used as invoker identity
func (pub *PublicKey) String() string {
	return pub.keyStr
}

// PrivateKey type
type PrivateKey struct {
	key    ed25519.PrivateKey
	pubKey *PublicKey
}

// NewPrivateKey creates PrivateKey from bytes
func NewPrivateKey(b []byte) (*PrivateKey, error) {
	if len(b) != ed25519.PrivateKeySize {
		return nil, ErrInvalidKeySize
	}
	priv := &PrivateKey{
		key: b,
	}
	priv.pubKey, _ = NewPublicKey(priv.key.Public().(ed25519.PublicKey))
	return priv, nil
}

// GenerateKey generates ed25519 key, crypto/rand is used when rand is nil
func GenerateKey(random io.Reader) *PrivateKey {
	if random == nil {
		random = rand.Reader
	}
	_, key, _ := ed25519.GenerateKey(random)
	priv, _ := NewPrivateKey(key)
	return priv
}

// Bytes return raw bytes
func (priv *PrivateKey) Bytes() []byte {
	return priv.key
}

// PublicKey returns corresponding public key
func (priv *PrivateKey) PublicKey() *PublicKey {
	return priv.pubKey
}

// Sign signs the message
func (priv *PrivateKey) Sign(msg []byte) *Signature {
	return &Signature{
		value:  ed25519.Sign(priv.key, msg),
		pubKey: priv.pubKey,
	}
}

// Signature type
type Signature struct {
	value  []byte
	pubKey *PublicKey
}

func newSignature(value, pubKey []byte) (*Signature, error) {
	pub, err := NewPublicKey(pubKey)
	if err != nil {
		return nil, err
	}
	if len(value) != ed25519.SignatureSize {
		return nil, ErrInvalidSig
	}
	return &Signature{value, pub}, nil
}

// Verify verifies the signature
func (sig *Signature) Verify(msg []byte) bool {
	return ed25519.Verify(sig.pubKey.key, msg, sig.value)
}

// PublicKey returns corresponding public key
func (sig *Signature) PublicKey() *PublicKey {
	return sig.pubKey
}

func (sig *Signature) Value() []byte {
	return sig.value
}
