package crypto

import "errors"

var (
	// ErrDecryption is returned when a ciphertext fails authentication under
	// the current key or is not a well-formed sealed blob.
	ErrDecryption = errors.New("decryption failed")

	// ErrInvalidKey is returned when the key file holds something other than
	// a base64-encoded 32-byte key.
	ErrInvalidKey = errors.New("invalid encryption key")

	// ErrKeyFile is returned when the key file cannot be created, written
	// or read.
	ErrKeyFile = errors.New("key file error")

	// ErrMalformedHash is returned when an encoded password hash cannot be
	// parsed.
	ErrMalformedHash = errors.New("malformed password hash")
)
