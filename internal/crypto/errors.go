package crypto

import "errors"

var (
	// ErrMissingKey indicates an empty encryption secret.
	ErrMissingKey = errors.New("missing encryption key")
	// ErrMalformedCiphertext indicates input that is not a valid 3-segment
	// encoded ciphertext.
	ErrMalformedCiphertext = errors.New("malformed ciphertext")
	// ErrDecryptionFailed indicates an authentication-tag mismatch: the
	// key is wrong or the data was tampered with.
	ErrDecryptionFailed = errors.New("decryption failed")
)
