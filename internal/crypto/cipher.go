// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto implements the symmetric helper that protects refresh
// tokens and provider-issued tokens at rest.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
)

// ivSize is the AES-GCM nonce length in bytes.
const ivSize = 12

// Cipher encrypts and decrypts short strings with AES-256-GCM.
//
// The key is SHA-256 of the configured secret, so any secret length works.
// Ciphertext is self-describing: "base64(iv):base64(ciphertext):base64(tag)",
// three segments joined by colons. A fresh random IV is drawn per call, so
// encrypting the same plaintext twice yields different outputs.
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher derives the AES-256 key from secret and returns a ready Cipher.
func NewCipher(secret string) (*Cipher, error) {
	if secret == "" {
		return nil, ErrMissingKey
	}

	key := sha256.Sum256([]byte(secret))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return &Cipher{aead: aead}, nil
}

// Encrypt seals plaintext and returns the 3-segment encoded ciphertext.
// An empty plaintext is allowed and round-trips to an empty string.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	iv := make([]byte, ivSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", fmt.Errorf("generate iv: %w", err)
	}

	// Seal appends the auth tag to the ciphertext; split it back out so
	// each segment is addressable on its own.
	sealed := c.aead.Seal(nil, iv, []byte(plaintext), nil)
	tagStart := len(sealed) - c.aead.Overhead()
	ciphertext, tag := sealed[:tagStart], sealed[tagStart:]

	segments := []string{
		base64.StdEncoding.EncodeToString(iv),
		base64.StdEncoding.EncodeToString(ciphertext),
		base64.StdEncoding.EncodeToString(tag),
	}

	return strings.Join(segments, ":"), nil
}

// Decrypt opens a 3-segment encoded ciphertext produced by [Cipher.Encrypt].
//
// Structural problems — wrong segment count, undecodable base64, wrong IV
// length — come back as ErrMalformedCiphertext; an authentication-tag
// mismatch (wrong key or corrupted data) comes back as ErrDecryptionFailed.
func (c *Cipher) Decrypt(encoded string) (string, error) {
	if encoded == "" {
		return "", fmt.Errorf("%w: empty input", ErrMalformedCiphertext)
	}

	segments := strings.Split(encoded, ":")
	if len(segments) != 3 {
		return "", fmt.Errorf("%w: expected 3 segments, got %d", ErrMalformedCiphertext, len(segments))
	}

	iv, err := base64.StdEncoding.DecodeString(segments[0])
	if err != nil {
		return "", fmt.Errorf("%w: decode iv: %w", ErrMalformedCiphertext, err)
	}
	if len(iv) != ivSize {
		return "", fmt.Errorf("%w: iv length %d", ErrMalformedCiphertext, len(iv))
	}

	ciphertext, err := base64.StdEncoding.DecodeString(segments[1])
	if err != nil {
		return "", fmt.Errorf("%w: decode ciphertext: %w", ErrMalformedCiphertext, err)
	}

	tag, err := base64.StdEncoding.DecodeString(segments[2])
	if err != nil {
		return "", fmt.Errorf("%w: decode tag: %w", ErrMalformedCiphertext, err)
	}

	plaintext, err := c.aead.Open(nil, iv, append(ciphertext, tag...), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}

	return string(plaintext), nil
}
