package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// FieldCipher encrypts and decrypts individual field values with the single
// process-wide data key.
//
// The empty string is the "no value" sentinel: Encrypt("") and Decrypt("")
// both return "" without touching the cipher, so absent fields stay absent
// across an encrypt/decrypt cycle.
type FieldCipher interface {
	// Encrypt seals plaintext with AES-256-GCM under a fresh random nonce and
	// returns base64(nonce || ciphertext).
	Encrypt(plaintext string) (string, error)

	// Decrypt reverses Encrypt. Any ciphertext that was not produced by the
	// current key (tampered, truncated, not base64, or sealed under another
	// key) yields an error wrapping [ErrDecryption]; garbage plaintext is
	// never returned.
	Decrypt(ciphertext string) (string, error)
}

// KeyStore hands out the data-encryption key. The key is bootstrapped at most
// once per key file and cached for the lifetime of the store.
type KeyStore interface {
	// Load returns the 32-byte key, creating and persisting it on first use.
	Load() ([]byte, error)
}

// PasswordHasher produces and verifies encoded password hashes for the
// authentication collaborator.
type PasswordHasher interface {
	// Hash returns an encoded argon2id hash of password.
	Hash(password string) (string, error)

	// Verify reports whether password matches the encoded hash.
	// A malformed encoded hash yields an error wrapping [ErrMalformedHash].
	Verify(password, encoded string) (bool, error)
}
